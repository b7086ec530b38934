package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/hunt-api/internal/domain/entity"
	apperrors "github.com/yourusername/hunt-api/internal/pkg/errors"
)

// PuzzleRepo реализует repository.PuzzleRepository
type PuzzleRepo struct {
	db *gorm.DB
}

// NewPuzzleRepo создает новый репозиторий загадок
func NewPuzzleRepo(db *gorm.DB) *PuzzleRepo {
	return &PuzzleRepo{db: db}
}

// Create создает новую загадку
func (r *PuzzleRepo) Create(puzzle *entity.Puzzle) error {
	return r.db.Create(puzzle).Error
}

// GetByID возвращает загадку по ID
func (r *PuzzleRepo) GetByID(id uint) (*entity.Puzzle, error) {
	var puzzle entity.Puzzle
	err := r.db.First(&puzzle, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &puzzle, nil
}

// ListByHunt возвращает все загадки охоты
func (r *PuzzleRepo) ListByHunt(huntID uint) ([]entity.Puzzle, error) {
	var puzzles []entity.Puzzle
	err := r.db.Where("hunt_id = ?", huntID).Order("id").Find(&puzzles).Error
	return puzzles, err
}

// IDsByHunt возвращает снапшот идентификаторов загадок охоты
func (r *PuzzleRepo) IDsByHunt(huntID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entity.Puzzle{}).
		Where("hunt_id = ?", huntID).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}

// Update обновляет загадку (правка организатором)
func (r *PuzzleRepo) Update(puzzle *entity.Puzzle) error {
	return r.db.Save(puzzle).Error
}

// Delete удаляет загадку
func (r *PuzzleRepo) Delete(id uint) error {
	return r.db.Delete(&entity.Puzzle{}, id).Error
}

// AddImages сохраняет пути к изображениям загадки
func (r *PuzzleRepo) AddImages(puzzleID uint, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	images := make([]entity.PuzzleImage, 0, len(paths))
	for _, p := range paths {
		images = append(images, entity.PuzzleImage{PuzzleID: puzzleID, Image: p})
	}
	return r.db.Create(&images).Error
}
