package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/hunt-api/internal/handler/dto"
	"github.com/yourusername/hunt-api/internal/service"
)

// HuntHandler обрабатывает запросы, связанные с охотами и их содержимым
type HuntHandler struct {
	huntService *service.HuntService
}

// NewHuntHandler создает новый обработчик охот
func NewHuntHandler(huntService *service.HuntService) *HuntHandler {
	return &HuntHandler{huntService: huntService}
}

// CreateHuntRequest представляет запрос на создание охоты
type CreateHuntRequest struct {
	Name         string    `json:"name" binding:"required,min=3,max=100"`
	Description  string    `json:"description" binding:"omitempty,max=2000"`
	StartDate    time.Time `json:"start_date" binding:"required"`
	EndDate      time.Time `json:"end_date" binding:"required"`
	PosterImg    string    `json:"poster_img" binding:"omitempty,max=255"`
	SkipsPerTeam int       `json:"skips_per_team"`
}

// CreateHunt обрабатывает запрос на создание охоты
func (h *HuntHandler) CreateHunt(c *gin.Context) {
	var req CreateHuntRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hunt, err := h.huntService.CreateHunt(service.CreateHuntInput{
		Name:         req.Name,
		Description:  req.Description,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		PosterImg:    req.PosterImg,
		SkipsPerTeam: req.SkipsPerTeam,
	}, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewHuntResponse(hunt, time.Now()))
}

// ListHunts возвращает страницу охот
func (h *HuntHandler) ListHunts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	hunts, err := h.huntService.ListHunts(limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewHuntListResponse(hunts, time.Now()))
}

// GetHunt возвращает охоту по ID
func (h *HuntHandler) GetHunt(c *gin.Context) {
	huntID := c.MustGet("huntID").(uint)

	hunt, err := h.huntService.GetHuntByID(huntID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewHuntResponse(hunt, time.Now()))
}

// GetHuntBySlug возвращает охоту по slug
func (h *HuntHandler) GetHuntBySlug(c *gin.Context) {
	slug := c.MustGet("huntSlug").(string)

	hunt, err := h.huntService.GetHuntBySlug(slug)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewHuntResponse(hunt, time.Now()))
}

// HuntExists проверяет существование охоты по slug
func (h *HuntHandler) HuntExists(c *gin.Context) {
	slug := c.MustGet("huntSlug").(string)

	exists, err := h.huntService.HuntExists(slug)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// UpdateHuntRequest представляет запрос на обновление охоты
type UpdateHuntRequest struct {
	Description  *string    `json:"description"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	PosterImg    *string    `json:"poster_img"`
	SkipsPerTeam *int       `json:"skips_per_team"`
}

// UpdateHunt обрабатывает запрос на обновление охоты
func (h *HuntHandler) UpdateHunt(c *gin.Context) {
	huntID := c.MustGet("huntID").(uint)

	var req UpdateHuntRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hunt, err := h.huntService.UpdateHunt(huntID, currentUserID(c), service.UpdateHuntInput{
		Description:  req.Description,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		PosterImg:    req.PosterImg,
		SkipsPerTeam: req.SkipsPerTeam,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewHuntResponse(hunt, time.Now()))
}

// DeleteHunt обрабатывает запрос на удаление охоты
func (h *HuntHandler) DeleteHunt(c *gin.Context) {
	huntID := c.MustGet("huntID").(uint)

	if err := h.huntService.DeleteHunt(huntID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "hunt deleted"})
}

// AddOrganizerRequest представляет запрос на добавление соорганизатора
type AddOrganizerRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// AddOrganizer обрабатывает запрос на добавление соорганизатора
func (h *HuntHandler) AddOrganizer(c *gin.Context) {
	huntID := c.MustGet("huntID").(uint)

	var req AddOrganizerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.huntService.AddOrganizer(huntID, currentUserID(c), req.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "organizer added"})
}

// RegisterParticipant записывает аутентифицированного пользователя участником охоты
func (h *HuntHandler) RegisterParticipant(c *gin.Context) {
	huntID := c.MustGet("huntID").(uint)

	if err := h.huntService.RegisterParticipant(huntID, currentUserID(c), time.Now()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "registered"})
}

// ============================================================================
// Загадки
// ============================================================================

// CreatePuzzleRequest представляет запрос на создание загадки
type CreatePuzzleRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"omitempty,max=5000"`
	Answer      string `json:"answer" binding:"required,min=1,max=100"`
	Type        string `json:"type" binding:"omitempty,oneof=easy medium hard"`
	Points      int    `json:"points" binding:"omitempty,min=1"`
}

// CreatePuzzle обрабатывает запрос на добавление загадки в охоту
func (h *HuntHandler) CreatePuzzle(c *gin.Context) {
	huntID := c.MustGet("huntID").(uint)

	var req CreatePuzzleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	puzzle, err := h.huntService.CreatePuzzle(huntID, currentUserID(c), service.CreatePuzzleInput{
		Name:        req.Name,
		Description: req.Description,
		Answer:      req.Answer,
		Type:        req.Type,
		Points:      req.Points,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewPuzzleResponse(puzzle))
}

// ListPuzzles возвращает все загадки охоты (только организаторам)
func (h *HuntHandler) ListPuzzles(c *gin.Context) {
	huntID := c.MustGet("huntID").(uint)

	puzzles, err := h.huntService.ListPuzzles(huntID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPuzzleListResponse(puzzles))
}

// UpdatePuzzle обрабатывает запрос на обновление загадки
func (h *HuntHandler) UpdatePuzzle(c *gin.Context) {
	puzzleID := c.MustGet("puzzleID").(uint)

	var req CreatePuzzleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	puzzle, err := h.huntService.UpdatePuzzle(puzzleID, currentUserID(c), service.CreatePuzzleInput{
		Name:        req.Name,
		Description: req.Description,
		Answer:      req.Answer,
		Type:        req.Type,
		Points:      req.Points,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPuzzleResponse(puzzle))
}

// DeletePuzzle обрабатывает запрос на удаление загадки
func (h *HuntHandler) DeletePuzzle(c *gin.Context) {
	puzzleID := c.MustGet("puzzleID").(uint)

	if err := h.huntService.DeletePuzzle(puzzleID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "puzzle deleted"})
}

// ============================================================================
// Объявления, правила, подсказки
// ============================================================================

// TextRequest — общий запрос с одним текстовым полем
type TextRequest struct {
	Text string `json:"text" binding:"required,min=1,max=5000"`
}

// CreateAnnouncement публикует объявление охоты
func (h *HuntHandler) CreateAnnouncement(c *gin.Context) {
	huntID := c.MustGet("huntID").(uint)

	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.huntService.CreateAnnouncement(huntID, currentUserID(c), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAnnouncementResponse(a))
}

// ListAnnouncements возвращает объявления охоты
func (h *HuntHandler) ListAnnouncements(c *gin.Context) {
	huntID := c.MustGet("huntID").(uint)

	announcements, err := h.huntService.ListAnnouncements(huntID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]*dto.AnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		out = append(out, dto.NewAnnouncementResponse(&announcements[i]))
	}
	c.JSON(http.StatusOK, out)
}

// CreateRule добавляет правило охоты
func (h *HuntHandler) CreateRule(c *gin.Context) {
	huntID := c.MustGet("huntID").(uint)

	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	r, err := h.huntService.CreateRule(huntID, currentUserID(c), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.RuleResponse{ID: r.ID, Rule: r.Rule})
}

// ListRules возвращает правила охоты
func (h *HuntHandler) ListRules(c *gin.Context) {
	huntID := c.MustGet("huntID").(uint)

	rules, err := h.huntService.ListRules(huntID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.RuleResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, dto.RuleResponse{ID: r.ID, Rule: r.Rule})
	}
	c.JSON(http.StatusOK, out)
}

// CreateHintRequest представляет запрос на выдачу подсказки команде
type CreateHintRequest struct {
	TeamID uint   `json:"team_id" binding:"required"`
	Text   string `json:"text" binding:"required,min=1,max=5000"`
}

// CreateHint выдает подсказку команде по загадке
func (h *HuntHandler) CreateHint(c *gin.Context) {
	puzzleID := c.MustGet("puzzleID").(uint)

	var req CreateHintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hint, err := h.huntService.CreateHint(puzzleID, req.TeamID, currentUserID(c), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.HintResponse{
		ID:        hint.ID,
		PuzzleID:  hint.PuzzleID,
		Text:      hint.Text,
		CreatedAt: hint.CreatedAt,
	})
}

// ListTeamHints возвращает подсказки команды
func (h *HuntHandler) ListTeamHints(c *gin.Context) {
	teamID := c.MustGet("teamID").(uint)

	hints, err := h.huntService.ListTeamHints(teamID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.HintResponse, 0, len(hints))
	for _, hint := range hints {
		out = append(out, dto.HintResponse{
			ID:        hint.ID,
			PuzzleID:  hint.PuzzleID,
			Text:      hint.Text,
			CreatedAt: hint.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}
