package entity

import "time"

// Announcement — объявление организатора, видимое всем командам охоты
type Announcement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	HuntID    uint      `gorm:"not null;index" json:"hunt_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatorID *uint     `json:"creator_id,omitempty"`
	Creator   *User     `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Announcement) TableName() string {
	return "announcements"
}

// Hint — подсказка, выданная конкретной команде по конкретной загадке
type Hint struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PuzzleID  uint      `gorm:"not null;index" json:"puzzle_id"`
	TeamID    uint      `gorm:"not null;index" json:"team_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Hint) TableName() string {
	return "hints"
}

// Rule — правило охоты, задается организаторами
type Rule struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	HuntID uint   `gorm:"not null;index" json:"hunt_id"`
	Rule   string `gorm:"type:text;not null" json:"rule"`
}

// TableName определяет имя таблицы для GORM
func (Rule) TableName() string {
	return "rules"
}
