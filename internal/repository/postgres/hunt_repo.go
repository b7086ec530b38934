package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/yourusername/hunt-api/internal/domain/entity"
	apperrors "github.com/yourusername/hunt-api/internal/pkg/errors"
)

// HuntRepo реализует repository.HuntRepository
type HuntRepo struct {
	db *gorm.DB
}

// NewHuntRepo создает новый репозиторий охот
func NewHuntRepo(db *gorm.DB) *HuntRepo {
	return &HuntRepo{db: db}
}

// Create создает новую охоту.
// Уникальность slug обеспечивается индексом; коллизия превращается в ErrConflict.
func (r *HuntRepo) Create(hunt *entity.Hunt) error {
	err := r.db.Create(hunt).Error
	if err != nil && isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

// GetByID возвращает охоту по ID с предзагруженными организаторами
func (r *HuntRepo) GetByID(id uint) (*entity.Hunt, error) {
	var hunt entity.Hunt
	err := r.db.Preload("Organizers").First(&hunt, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &hunt, nil
}

// GetBySlug возвращает охоту по slug с предзагруженными организаторами
func (r *HuntRepo) GetBySlug(slug string) (*entity.Hunt, error) {
	var hunt entity.Hunt
	err := r.db.Preload("Organizers").Where("slug = ?", slug).First(&hunt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &hunt, nil
}

// SlugExists проверяет существование охоты с данным slug
func (r *HuntRepo) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Hunt{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List возвращает список охот с пагинацией
func (r *HuntRepo) List(limit, offset int) ([]entity.Hunt, error) {
	var hunts []entity.Hunt
	err := r.db.Limit(limit).Offset(offset).Order("start_date DESC").Find(&hunts).Error
	return hunts, err
}

// Update обновляет охоту
func (r *HuntRepo) Update(hunt *entity.Hunt) error {
	err := r.db.Save(hunt).Error
	if err != nil && isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

// Delete удаляет охоту; загадки, команды и прочее каскадируются на уровне БД
func (r *HuntRepo) Delete(id uint) error {
	return r.db.Delete(&entity.Hunt{}, id).Error
}

// AddOrganizer добавляет пользователя в организаторы охоты
func (r *HuntRepo) AddOrganizer(huntID uint, user *entity.User) error {
	return r.db.Model(&entity.Hunt{ID: huntID}).Association("Organizers").Append(user)
}

// AddParticipant добавляет пользователя в участники охоты
func (r *HuntRepo) AddParticipant(huntID uint, user *entity.User) error {
	return r.db.Model(&entity.Hunt{ID: huntID}).Association("Participants").Append(user)
}

// AddImages сохраняет пути к изображениям охоты
func (r *HuntRepo) AddImages(huntID uint, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	images := make([]entity.HuntImage, 0, len(paths))
	for _, p := range paths {
		images = append(images, entity.HuntImage{HuntID: huntID, Image: p})
	}
	return r.db.Create(&images).Error
}

// isUniqueViolation проверяет Postgres unique violation (23505) для pgconn и lib/pq драйверов
func isUniqueViolation(err error) bool {
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}
