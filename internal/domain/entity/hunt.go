package entity

import (
	"time"

	gosimpleslug "github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Hunt представляет охоту за сокровищами: набор загадок, команды и организаторы
// внутри фиксированного временного окна. Статус (до/во время/после) не хранится,
// а вычисляется от часов на чтении.
type Hunt struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Slug        string    `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Description string    `gorm:"type:text;not null;default:''" json:"description"`
	StartDate   time.Time `gorm:"not null;index" json:"start_date"`
	EndDate     time.Time `gorm:"not null" json:"end_date"`
	PosterImg   string    `gorm:"size:255;not null;default:''" json:"poster_img"`

	// Сколько скипов получает каждая команда при создании
	SkipsPerTeam int `gorm:"not null;default:3" json:"skips_per_team"`

	Organizers   []User `gorm:"many2many:hunt_organizers" json:"organizers,omitempty"`
	Participants []User `gorm:"many2many:hunt_participants" json:"participants,omitempty"`

	Puzzles       []Puzzle       `gorm:"foreignKey:HuntID;constraint:OnDelete:CASCADE" json:"puzzles,omitempty"`
	Teams         []Team         `gorm:"foreignKey:HuntID;constraint:OnDelete:CASCADE" json:"teams,omitempty"`
	Announcements []Announcement `gorm:"foreignKey:HuntID;constraint:OnDelete:CASCADE" json:"announcements,omitempty"`
	Rules         []Rule         `gorm:"foreignKey:HuntID;constraint:OnDelete:CASCADE" json:"rules,omitempty"`
	Images        []HuntImage    `gorm:"foreignKey:HuntID;constraint:OnDelete:CASCADE" json:"images,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Hunt) TableName() string {
	return "hunts"
}

// BeforeSave выводит slug детерминированно из названия
func (h *Hunt) BeforeSave(tx *gorm.DB) error {
	h.Slug = gosimpleslug.Make(h.Name)
	return nil
}

// IsActiveAt проверяет, идет ли охота в момент now (границы включительно)
func (h *Hunt) IsActiveAt(now time.Time) bool {
	return !now.Before(h.StartDate) && !now.After(h.EndDate)
}

// IsBeforeStart проверяет, что охота еще не началась
func (h *Hunt) IsBeforeStart(now time.Time) bool {
	return now.Before(h.StartDate)
}

// IsAfterEnd проверяет, что охота уже закончилась
func (h *Hunt) IsAfterEnd(now time.Time) bool {
	return now.After(h.EndDate)
}

// Window возвращает полную длительность охоты — знаменатель формулы начисления очков
func (h *Hunt) Window() time.Duration {
	return h.EndDate.Sub(h.StartDate)
}

// IsOrganizer проверяет, входит ли пользователь в организаторы.
// Требует предзагруженной ассоциации Organizers.
func (h *Hunt) IsOrganizer(userID uint) bool {
	for _, o := range h.Organizers {
		if o.ID == userID {
			return true
		}
	}
	return false
}
