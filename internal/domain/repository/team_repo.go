package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/hunt-api/internal/domain/entity"
)

// TeamRepository определяет методы для работы с командами.
//
// Методы, принимающие tx *gorm.DB, предназначены для вызова внутри
// WithLockedTeam: вся связка "выбрать загадку — назначить — открыть запись
// леджера" должна выполняться как один атомарный read-modify-write по строке
// команды, иначе два конкурентных запроса участников назначат две загадки.
type TeamRepository interface {
	Create(team *entity.Team) error
	// GetByID возвращает команду с предзагруженными лидером, участниками
	// и множествами просмотренных/решенных загадок
	GetByID(id uint) (*entity.Team, error)
	GetByHuntAndUser(huntID, userID uint) (*entity.Team, error)
	GetByHuntAndPassword(huntID uint, password string) (*entity.Team, error)
	// ListByHunt возвращает команды охоты с предзагруженным лидером (лидерборд)
	ListByHunt(huntID uint) ([]entity.Team, error)
	IsUserOnAnyTeam(huntID, userID uint) (bool, error)
	AddMember(teamID uint, user *entity.User) error
	Update(team *entity.Team) error

	// WithLockedTeam выполняет fn в транзакции, держа блокировку SELECT FOR UPDATE
	// на строке команды. Команда передается в fn перечитанной под блокировкой,
	// со всеми предзагрузками как у GetByID.
	WithLockedTeam(teamID uint, fn func(tx *gorm.DB, team *entity.Team) error) error

	SetCurrentPuzzle(tx *gorm.DB, teamID uint, puzzleID *uint) error
	AppendViewed(tx *gorm.DB, teamID uint, puzzle *entity.Puzzle) error
	AppendSolved(tx *gorm.DB, teamID uint, puzzle *entity.Puzzle) error
	AdvanceCursor(tx *gorm.DB, teamID uint) error
	AddPoints(tx *gorm.DB, teamID uint, points int) error
	// DecrementSkip атомарно уменьшает remaining_skips, только если их больше нуля;
	// при нуле возвращает ErrNoSkipsLeft
	DecrementSkip(tx *gorm.DB, teamID uint) error
}

// TimeMaintenanceRepository определяет методы для работы с тайминг-леджером
type TimeMaintenanceRepository interface {
	// Open создает открытую запись для пары (команда, загадка) со штампом показа
	Open(tx *gorm.DB, teamID, puzzleID uint, start time.Time) error
	GetOpen(teamID, puzzleID uint) (*entity.PuzzleTimeMaintenance, error)
	// Close ставит штамп решения на единственную открытую запись пары
	// и возвращает финализированную запись для начисления очков
	Close(tx *gorm.DB, teamID, puzzleID uint, end time.Time) (*entity.PuzzleTimeMaintenance, error)
}
