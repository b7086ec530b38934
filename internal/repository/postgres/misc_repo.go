package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/hunt-api/internal/domain/entity"
)

// AnnouncementRepo реализует repository.AnnouncementRepository
type AnnouncementRepo struct {
	db *gorm.DB
}

// NewAnnouncementRepo создает новый репозиторий объявлений
func NewAnnouncementRepo(db *gorm.DB) *AnnouncementRepo {
	return &AnnouncementRepo{db: db}
}

// Create создает новое объявление
func (r *AnnouncementRepo) Create(a *entity.Announcement) error {
	return r.db.Create(a).Error
}

// ListByHunt возвращает объявления охоты, новые первыми
func (r *AnnouncementRepo) ListByHunt(huntID uint) ([]entity.Announcement, error) {
	var items []entity.Announcement
	err := r.db.Preload("Creator").
		Where("hunt_id = ?", huntID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// RuleRepo реализует repository.RuleRepository
type RuleRepo struct {
	db *gorm.DB
}

// NewRuleRepo создает новый репозиторий правил
func NewRuleRepo(db *gorm.DB) *RuleRepo {
	return &RuleRepo{db: db}
}

// Create создает новое правило
func (r *RuleRepo) Create(rule *entity.Rule) error {
	return r.db.Create(rule).Error
}

// ListByHunt возвращает правила охоты
func (r *RuleRepo) ListByHunt(huntID uint) ([]entity.Rule, error) {
	var items []entity.Rule
	err := r.db.Where("hunt_id = ?", huntID).Order("id").Find(&items).Error
	return items, err
}

// HintRepo реализует repository.HintRepository
type HintRepo struct {
	db *gorm.DB
}

// NewHintRepo создает новый репозиторий подсказок
func NewHintRepo(db *gorm.DB) *HintRepo {
	return &HintRepo{db: db}
}

// Create создает новую подсказку
func (r *HintRepo) Create(h *entity.Hint) error {
	return r.db.Create(h).Error
}

// ListByPuzzleAndTeam возвращает подсказки команды по конкретной загадке
func (r *HintRepo) ListByPuzzleAndTeam(puzzleID, teamID uint) ([]entity.Hint, error) {
	var items []entity.Hint
	err := r.db.Where("puzzle_id = ? AND team_id = ?", puzzleID, teamID).
		Order("created_at").
		Find(&items).Error
	return items, err
}

// ListByTeam возвращает все подсказки команды
func (r *HintRepo) ListByTeam(teamID uint) ([]entity.Hint, error) {
	var items []entity.Hint
	err := r.db.Where("team_id = ?", teamID).Order("created_at").Find(&items).Error
	return items, err
}
