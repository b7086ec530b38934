package entity

import (
	"strings"
	"time"
)

// Теги сложности загадок и их максимальные очки
const (
	PuzzleTypeEasy   = "easy"
	PuzzleTypeMedium = "medium"
	PuzzleTypeHard   = "hard"

	MaxPointsEasy   = 50
	MaxPointsMedium = 75
	MaxPointsHard   = 100
)

// Puzzle представляет загадку внутри охоты
type Puzzle struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	HuntID      uint   `gorm:"not null;index" json:"hunt_id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`

	// Канонический ответ; сравнение без учета регистра и крайних пробелов
	Answer string `gorm:"size:100;not null" json:"-"`

	Type   string `gorm:"size:100;not null;default:''" json:"type"`
	Points int    `gorm:"not null;default:0" json:"points"`

	Images []PuzzleImage `gorm:"foreignKey:PuzzleID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Hints  []Hint        `gorm:"foreignKey:PuzzleID;constraint:OnDelete:CASCADE" json:"hints,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Puzzle) TableName() string {
	return "puzzles"
}

// CheckAnswer сравнивает присланный ответ с каноническим:
// обрезаются крайние пробелы, регистр не учитывается
func (p *Puzzle) CheckAnswer(submitted string) bool {
	return strings.EqualFold(
		strings.TrimSpace(submitted),
		strings.TrimSpace(p.Answer),
	)
}

// DefaultPointsForType возвращает максимальные очки для тега сложности.
// Для неизвестного тега возвращает 0 — организатор задает очки явно.
func DefaultPointsForType(puzzleType string) int {
	switch puzzleType {
	case PuzzleTypeEasy:
		return MaxPointsEasy
	case PuzzleTypeMedium:
		return MaxPointsMedium
	case PuzzleTypeHard:
		return MaxPointsHard
	default:
		return 0
	}
}

// PuzzleImage хранит путь к изображению загадки (сам файловый сторедж вне ядра)
type PuzzleImage struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PuzzleID uint   `gorm:"not null;index" json:"puzzle_id"`
	Image    string `gorm:"size:255;not null" json:"image"`
}

// TableName определяет имя таблицы для GORM
func (PuzzleImage) TableName() string {
	return "puzzle_images"
}

// HuntImage хранит путь к изображению охоты
type HuntImage struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	HuntID uint   `gorm:"not null;index" json:"hunt_id"`
	Image  string `gorm:"size:255;not null" json:"image"`
}

// TableName определяет имя таблицы для GORM
func (HuntImage) TableName() string {
	return "hunt_images"
}
