package repository

import (
	"github.com/yourusername/hunt-api/internal/domain/entity"
)

// PuzzleRepository определяет методы для работы с загадками
type PuzzleRepository interface {
	Create(puzzle *entity.Puzzle) error
	GetByID(id uint) (*entity.Puzzle, error)
	ListByHunt(huntID uint) ([]entity.Puzzle, error)
	// IDsByHunt возвращает снапшот идентификаторов загадок охоты,
	// по нему селектор считает множество доступных кандидатов
	IDsByHunt(huntID uint) ([]uint, error)
	Update(puzzle *entity.Puzzle) error
	Delete(id uint) error
	AddImages(puzzleID uint, paths []string) error
}
