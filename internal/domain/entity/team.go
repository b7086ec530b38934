package entity

import (
	"time"

	"github.com/lib/pq"
)

// Team представляет команду внутри охоты: один лидер, участники,
// прогресс по загадкам и накопленные очки
type Team struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	HuntID uint   `gorm:"not null;index" json:"hunt_id"`
	Name   string `gorm:"size:100;not null" json:"name"`

	LeaderID uint   `gorm:"not null;index" json:"leader_id"`
	Leader   *User  `gorm:"foreignKey:LeaderID" json:"leader,omitempty"`
	Members  []User `gorm:"many2many:team_members" json:"members,omitempty"`

	// Скипы только убывают; стартовое значение берется из hunt.SkipsPerTeam
	RemainingSkips int `gorm:"not null;default:3" json:"remaining_skips"`

	// Пароль для вступления, генерируется системой и передается вне платформы
	JoiningPassword string `gorm:"size:100;not null;default:''" json:"-"`

	// Прогресс во время охоты
	CurrentPuzzleID *uint    `gorm:"index" json:"current_puzzle_id,omitempty"`
	CurrentPuzzle   *Puzzle  `gorm:"foreignKey:CurrentPuzzleID" json:"current_puzzle,omitempty"`
	ViewedPuzzles   []Puzzle `gorm:"many2many:team_viewed_puzzles" json:"viewed_puzzles,omitempty"`
	SolvedPuzzles   []Puzzle `gorm:"many2many:team_solved_puzzles" json:"solved_puzzles,omitempty"`
	Points          int      `gorm:"not null;default:0" json:"points"`

	// Фиксированный порядок загадок (опционально). Пустой массив = случайный режим.
	PuzzleOrder pq.Int64Array `gorm:"type:bigint[]" json:"puzzle_order,omitempty"`
	OrderCursor int           `gorm:"not null;default:0" json:"order_cursor"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Team) TableName() string {
	return "teams"
}

// IsLeader проверяет, является ли пользователь лидером команды
func (t *Team) IsLeader(userID uint) bool {
	return t.LeaderID == userID
}

// HasMember проверяет членство пользователя в команде.
// Требует предзагруженной ассоциации Members.
func (t *Team) HasMember(userID uint) bool {
	for _, m := range t.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// HasViewed проверяет, показывалась ли загадка команде.
// Требует предзагруженной ассоциации ViewedPuzzles.
func (t *Team) HasViewed(puzzleID uint) bool {
	for _, p := range t.ViewedPuzzles {
		if p.ID == puzzleID {
			return true
		}
	}
	return false
}

// HasSolved проверяет, решена ли загадка командой.
// Требует предзагруженной ассоциации SolvedPuzzles.
func (t *Team) HasSolved(puzzleID uint) bool {
	for _, p := range t.SolvedPuzzles {
		if p.ID == puzzleID {
			return true
		}
	}
	return false
}

// HasFixedOrder сообщает, назначен ли команде фиксированный порядок загадок
func (t *Team) HasFixedOrder() bool {
	return len(t.PuzzleOrder) > 0
}
