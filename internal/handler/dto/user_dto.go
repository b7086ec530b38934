package dto

import (
	"time"

	"github.com/yourusername/hunt-api/internal/domain/entity"
)

// UserResponse представляет пользователя в формате для ответа клиенту
type UserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// NewUserResponse создает DTO пользователя
func NewUserResponse(u *entity.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// TeamResponse представляет команду в формате для ответа клиенту.
// Пароль вступления включается только для лидера.
type TeamResponse struct {
	ID              uint           `json:"id"`
	HuntID          uint           `json:"hunt_id"`
	Name            string         `json:"name"`
	LeaderID        uint           `json:"leader_id"`
	Members         []UserResponse `json:"members,omitempty"`
	RemainingSkips  int            `json:"remaining_skips"`
	Points          int            `json:"points"`
	JoiningPassword string         `json:"joining_password,omitempty"`
	SolvedCount     int            `json:"solved_count"`
	CreatedAt       time.Time      `json:"created_at"`
}

// NewTeamResponse создает DTO команды для пользователя viewerID
func NewTeamResponse(t *entity.Team, viewerID uint) *TeamResponse {
	members := make([]UserResponse, 0, len(t.Members))
	for i := range t.Members {
		m := t.Members[i]
		// Email участников не раскрываем внутри команды
		members = append(members, UserResponse{
			ID:        m.ID,
			Username:  m.Username,
			FirstName: m.FirstName,
			LastName:  m.LastName,
		})
	}

	resp := &TeamResponse{
		ID:             t.ID,
		HuntID:         t.HuntID,
		Name:           t.Name,
		LeaderID:       t.LeaderID,
		Members:        members,
		RemainingSkips: t.RemainingSkips,
		Points:         t.Points,
		SolvedCount:    len(t.SolvedPuzzles),
		CreatedAt:      t.CreatedAt,
	}
	if t.IsLeader(viewerID) {
		resp.JoiningPassword = t.JoiningPassword
	}
	return resp
}
