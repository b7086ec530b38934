package repository

import (
	"github.com/yourusername/hunt-api/internal/domain/entity"
)

// HuntRepository определяет методы для работы с охотами
type HuntRepository interface {
	Create(hunt *entity.Hunt) error
	// GetByID возвращает охоту с предзагруженными организаторами
	GetByID(id uint) (*entity.Hunt, error)
	GetBySlug(slug string) (*entity.Hunt, error)
	SlugExists(slug string) (bool, error)
	List(limit, offset int) ([]entity.Hunt, error)
	Update(hunt *entity.Hunt) error
	Delete(id uint) error
	AddOrganizer(huntID uint, user *entity.User) error
	AddParticipant(huntID uint, user *entity.User) error
	AddImages(huntID uint, paths []string) error
}

// AnnouncementRepository определяет методы для работы с объявлениями охоты
type AnnouncementRepository interface {
	Create(a *entity.Announcement) error
	ListByHunt(huntID uint) ([]entity.Announcement, error)
}

// RuleRepository определяет методы для работы с правилами охоты
type RuleRepository interface {
	Create(r *entity.Rule) error
	ListByHunt(huntID uint) ([]entity.Rule, error)
}

// HintRepository определяет методы для работы с подсказками
type HintRepository interface {
	Create(h *entity.Hint) error
	ListByPuzzleAndTeam(puzzleID, teamID uint) ([]entity.Hint, error)
	ListByTeam(teamID uint) ([]entity.Hint, error)
}
