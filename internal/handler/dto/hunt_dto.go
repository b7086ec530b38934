package dto

import (
	"time"

	"github.com/yourusername/hunt-api/internal/domain/entity"
)

// HuntResponse представляет охоту в формате для ответа клиенту
type HuntResponse struct {
	ID           uint           `json:"id"`
	Name         string         `json:"name"`
	Slug         string         `json:"slug"`
	Description  string         `json:"description,omitempty"`
	StartDate    time.Time      `json:"start_date"`
	EndDate      time.Time      `json:"end_date"`
	PosterImg    string         `json:"poster_img,omitempty"`
	SkipsPerTeam int            `json:"skips_per_team"`
	Status       string         `json:"status"`
	Organizers   []UserResponse `json:"organizers,omitempty"`
	Images       []string       `json:"images,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// NewHuntResponse создает DTO охоты. Статус вычисляется от текущего времени.
func NewHuntResponse(hunt *entity.Hunt, now time.Time) *HuntResponse {
	status := "active"
	switch {
	case hunt.IsBeforeStart(now):
		status = "upcoming"
	case hunt.IsAfterEnd(now):
		status = "finished"
	}

	organizers := make([]UserResponse, 0, len(hunt.Organizers))
	for i := range hunt.Organizers {
		organizers = append(organizers, *NewUserResponse(&hunt.Organizers[i]))
	}
	images := make([]string, 0, len(hunt.Images))
	for _, img := range hunt.Images {
		images = append(images, img.Image)
	}

	return &HuntResponse{
		ID:           hunt.ID,
		Name:         hunt.Name,
		Slug:         hunt.Slug,
		Description:  hunt.Description,
		StartDate:    hunt.StartDate,
		EndDate:      hunt.EndDate,
		PosterImg:    hunt.PosterImg,
		SkipsPerTeam: hunt.SkipsPerTeam,
		Status:       status,
		Organizers:   organizers,
		Images:       images,
		CreatedAt:    hunt.CreatedAt,
	}
}

// NewHuntListResponse создает список DTO охот
func NewHuntListResponse(hunts []entity.Hunt, now time.Time) []*HuntResponse {
	out := make([]*HuntResponse, 0, len(hunts))
	for i := range hunts {
		out = append(out, NewHuntResponse(&hunts[i], now))
	}
	return out
}

// PuzzleResponse представляет загадку в формате для ответа клиенту.
// Ответ загадки наружу не отдается никогда.
type PuzzleResponse struct {
	ID          uint      `json:"id"`
	HuntID      uint      `json:"hunt_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        string    `json:"type,omitempty"`
	Points      int       `json:"points"`
	Images      []string  `json:"images,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewPuzzleResponse создает DTO загадки
func NewPuzzleResponse(p *entity.Puzzle) *PuzzleResponse {
	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, img.Image)
	}
	return &PuzzleResponse{
		ID:          p.ID,
		HuntID:      p.HuntID,
		Name:        p.Name,
		Description: p.Description,
		Type:        p.Type,
		Points:      p.Points,
		Images:      images,
		CreatedAt:   p.CreatedAt,
	}
}

// NewPuzzleListResponse создает список DTO загадок
func NewPuzzleListResponse(puzzles []entity.Puzzle) []*PuzzleResponse {
	out := make([]*PuzzleResponse, 0, len(puzzles))
	for i := range puzzles {
		out = append(out, NewPuzzleResponse(&puzzles[i]))
	}
	return out
}

// AnnouncementResponse представляет объявление охоты
type AnnouncementResponse struct {
	ID        uint      `json:"id"`
	HuntID    uint      `json:"hunt_id"`
	Text      string    `json:"text"`
	Creator   string    `json:"creator,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAnnouncementResponse создает DTO объявления
func NewAnnouncementResponse(a *entity.Announcement) *AnnouncementResponse {
	creator := ""
	if a.Creator != nil {
		creator = a.Creator.DisplayName()
	}
	return &AnnouncementResponse{
		ID:        a.ID,
		HuntID:    a.HuntID,
		Text:      a.Text,
		Creator:   creator,
		CreatedAt: a.CreatedAt,
	}
}

// RuleResponse представляет правило охоты
type RuleResponse struct {
	ID   uint   `json:"id"`
	Rule string `json:"rule"`
}

// HintResponse представляет подсказку команде
type HintResponse struct {
	ID        uint      `json:"id"`
	PuzzleID  uint      `json:"puzzle_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
