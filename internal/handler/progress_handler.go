package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/hunt-api/internal/handler/dto"
	"github.com/yourusername/hunt-api/internal/service"
	"github.com/yourusername/hunt-api/internal/service/progression"
)

// ProgressHandler обрабатывает запросы прогрессии охоты:
// текущая загадка, переход/пропуск, сдача ответа, лидерборд
type ProgressHandler struct {
	progressService *service.ProgressService
}

// NewProgressHandler создает новый обработчик прогрессии
func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// GetCurrentPuzzle возвращает текущую загадку команды пользователя,
// при необходимости выдавая новую
func (h *ProgressHandler) GetCurrentPuzzle(c *gin.Context) {
	huntID := c.MustGet("huntID").(uint)

	puzzle, err := h.progressService.ViewCurrent(huntID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPuzzleResponse(puzzle))
}

// AdvanceRequest представляет запрос на смену текущей загадки
type AdvanceRequest struct {
	Mode string `json:"mode" binding:"required,oneof=next skip"`
}

// Advance обрабатывает переход к следующей загадке или пропуск текущей
func (h *ProgressHandler) Advance(c *gin.Context) {
	huntID := c.MustGet("huntID").(uint)

	var req AdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	puzzle, err := h.progressService.Advance(huntID, currentUserID(c), progression.AdvanceMode(req.Mode))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPuzzleResponse(puzzle))
}

// SubmitAnswerRequest представляет запрос на сдачу ответа
type SubmitAnswerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// SubmitAnswer обрабатывает сдачу ответа на загадку
func (h *ProgressHandler) SubmitAnswer(c *gin.Context) {
	puzzleID := c.MustGet("puzzleID").(uint)

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	points, err := h.progressService.SubmitAnswer(puzzleID, currentUserID(c), req.Answer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"correct":        true,
		"points_awarded": points,
	})
}

// GetLeaderboard возвращает лидерборд охоты
func (h *ProgressHandler) GetLeaderboard(c *gin.Context) {
	huntID := c.MustGet("huntID").(uint)

	entries, err := h.progressService.Leaderboard(huntID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
