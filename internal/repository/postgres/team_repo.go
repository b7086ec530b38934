package postgres

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/hunt-api/internal/domain/entity"
	"github.com/yourusername/hunt-api/internal/domain/repository"
	apperrors "github.com/yourusername/hunt-api/internal/pkg/errors"
)

// TeamRepo реализует repository.TeamRepository
type TeamRepo struct {
	db *gorm.DB
}

// NewTeamRepo создает новый репозиторий команд
func NewTeamRepo(db *gorm.DB) *TeamRepo {
	return &TeamRepo{db: db}
}

// teamPreloads добавляет стандартные предзагрузки команды
func teamPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Leader").
		Preload("Members").
		Preload("ViewedPuzzles").
		Preload("SolvedPuzzles")
}

// Create создает новую команду
func (r *TeamRepo) Create(team *entity.Team) error {
	return r.db.Create(team).Error
}

// GetByID возвращает команду по ID со всеми предзагрузками
func (r *TeamRepo) GetByID(id uint) (*entity.Team, error) {
	var team entity.Team
	err := teamPreloads(r.db).First(&team, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

// GetByHuntAndUser возвращает команду охоты, в которой состоит пользователь
func (r *TeamRepo) GetByHuntAndUser(huntID, userID uint) (*entity.Team, error) {
	var team entity.Team
	err := teamPreloads(r.db).
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("teams.hunt_id = ? AND team_members.user_id = ?", huntID, userID).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

// GetByHuntAndPassword возвращает команду охоты по паролю вступления
func (r *TeamRepo) GetByHuntAndPassword(huntID uint, password string) (*entity.Team, error) {
	var team entity.Team
	err := teamPreloads(r.db).
		Where("hunt_id = ? AND joining_password = ?", huntID, password).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

// ListByHunt возвращает команды охоты с лидером, отсортированные по очкам.
// Вторичный ключ id держит порядок стабильным при равенстве очков.
func (r *TeamRepo) ListByHunt(huntID uint) ([]entity.Team, error) {
	var teams []entity.Team
	err := r.db.Preload("Leader").
		Where("hunt_id = ?", huntID).
		Order("points DESC, id").
		Find(&teams).Error
	return teams, err
}

// IsUserOnAnyTeam проверяет, состоит ли пользователь в какой-либо команде охоты
func (r *TeamRepo) IsUserOnAnyTeam(huntID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Team{}).
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("teams.hunt_id = ? AND team_members.user_id = ?", huntID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update сохраняет изменения команды
func (r *TeamRepo) Update(team *entity.Team) error {
	return r.db.Save(team).Error
}

// AddMember добавляет пользователя в команду
func (r *TeamRepo) AddMember(teamID uint, user *entity.User) error {
	return r.db.Model(&entity.Team{ID: teamID}).Association("Members").Append(user)
}

// WithLockedTeam выполняет fn в транзакции под SELECT FOR UPDATE на строке команды.
// Предзагрузки выполняются отдельным запросом уже после захвата блокировки,
// поэтому fn видит консистентное состояние прогресса.
func (r *TeamRepo) WithLockedTeam(teamID uint, fn func(tx *gorm.DB, team *entity.Team) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Сначала блокировка голой строки
		var locked entity.Team
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&locked, teamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		// Затем перечитываем с ассоциациями (уже под блокировкой)
		var team entity.Team
		if err := teamPreloads(tx).First(&team, teamID).Error; err != nil {
			return err
		}

		return fn(tx, &team)
	})
}

// SetCurrentPuzzle точечно обновляет указатель текущей загадки
func (r *TeamRepo) SetCurrentPuzzle(tx *gorm.DB, teamID uint, puzzleID *uint) error {
	return tx.Model(&entity.Team{}).
		Where("id = ?", teamID).
		Update("current_puzzle_id", puzzleID).
		Error
}

// AppendViewed добавляет загадку в множество просмотренных
func (r *TeamRepo) AppendViewed(tx *gorm.DB, teamID uint, puzzle *entity.Puzzle) error {
	return tx.Model(&entity.Team{ID: teamID}).Association("ViewedPuzzles").Append(puzzle)
}

// AppendSolved добавляет загадку в множество решенных
func (r *TeamRepo) AppendSolved(tx *gorm.DB, teamID uint, puzzle *entity.Puzzle) error {
	return tx.Model(&entity.Team{ID: teamID}).Association("SolvedPuzzles").Append(puzzle)
}

// AdvanceCursor атомарно сдвигает курсор фиксированного порядка на единицу
func (r *TeamRepo) AdvanceCursor(tx *gorm.DB, teamID uint) error {
	return tx.Model(&entity.Team{}).
		Where("id = ?", teamID).
		Update("order_cursor", gorm.Expr("order_cursor + 1")).
		Error
}

// AddPoints атомарно прибавляет очки команде
func (r *TeamRepo) AddPoints(tx *gorm.DB, teamID uint, points int) error {
	return tx.Model(&entity.Team{}).
		Where("id = ?", teamID).
		Update("points", gorm.Expr("points + ?", points)).
		Error
}

// DecrementSkip атомарно списывает один скип.
// Условие remaining_skips > 0 в самом UPDATE исключает гонку двух
// конкурентных скипов при одном оставшемся: проигравший получает
// RowsAffected == 0 и ErrNoSkipsLeft.
func (r *TeamRepo) DecrementSkip(tx *gorm.DB, teamID uint) error {
	result := tx.Model(&entity.Team{}).
		Where("id = ? AND remaining_skips > 0", teamID).
		Update("remaining_skips", gorm.Expr("remaining_skips - 1"))

	if result.Error != nil {
		return fmt.Errorf("decrement skip for team #%d failed: %w", teamID, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNoSkipsLeft
	}
	return nil
}

// TimeMaintenanceRepo реализует repository.TimeMaintenanceRepository
type TimeMaintenanceRepo struct {
	db *gorm.DB
}

// NewTimeMaintenanceRepo создает новый репозиторий тайминг-леджера
func NewTimeMaintenanceRepo(db *gorm.DB) *TimeMaintenanceRepo {
	return &TimeMaintenanceRepo{db: db}
}

// Open создает открытую запись леджера со штампом показа
func (r *TimeMaintenanceRepo) Open(tx *gorm.DB, teamID, puzzleID uint, start time.Time) error {
	entry := entity.PuzzleTimeMaintenance{
		TeamID:          teamID,
		PuzzleID:        puzzleID,
		PuzzleStartTime: &start,
	}
	return tx.Create(&entry).Error
}

// GetOpen возвращает открытую запись для пары (команда, загадка)
func (r *TimeMaintenanceRepo) GetOpen(teamID, puzzleID uint) (*entity.PuzzleTimeMaintenance, error) {
	var entry entity.PuzzleTimeMaintenance
	err := r.db.
		Where("team_id = ? AND puzzle_id = ? AND puzzle_end_time IS NULL", teamID, puzzleID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNoOpenEntry
		}
		return nil, err
	}
	return &entry, nil
}

// Close ставит штамп решения на открытую запись пары и возвращает ее
func (r *TimeMaintenanceRepo) Close(tx *gorm.DB, teamID, puzzleID uint, end time.Time) (*entity.PuzzleTimeMaintenance, error) {
	var entry entity.PuzzleTimeMaintenance
	err := tx.
		Where("team_id = ? AND puzzle_id = ? AND puzzle_end_time IS NULL", teamID, puzzleID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNoOpenEntry
		}
		return nil, err
	}

	entry.PuzzleEndTime = &end
	if err := tx.Save(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}
