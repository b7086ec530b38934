package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/hunt-api/internal/handler/dto"
	"github.com/yourusername/hunt-api/internal/service"
)

// TeamHandler обрабатывает запросы, связанные с командами
type TeamHandler struct {
	teamService *service.TeamService
}

// NewTeamHandler создает новый обработчик команд
func NewTeamHandler(teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// CreateTeamRequest представляет запрос на создание команды
type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateTeam обрабатывает запрос на создание команды охоты
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	huntID := c.MustGet("huntID").(uint)

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := currentUserID(c)
	team, err := h.teamService.CreateTeam(huntID, userID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewTeamResponse(team, userID))
}

// JoinTeamRequest представляет запрос на вступление в команду
type JoinTeamRequest struct {
	JoiningPassword string `json:"joining_password" binding:"required"`
}

// JoinTeam обрабатывает запрос на вступление в команду по паролю
func (h *TeamHandler) JoinTeam(c *gin.Context) {
	huntID := c.MustGet("huntID").(uint)

	var req JoinTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := currentUserID(c)
	team, err := h.teamService.JoinTeam(huntID, userID, req.JoiningPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTeamResponse(team, userID))
}

// GetTeam возвращает команду по ID
func (h *TeamHandler) GetTeam(c *gin.Context) {
	teamID := c.MustGet("teamID").(uint)

	userID := currentUserID(c)
	team, err := h.teamService.GetTeam(teamID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTeamResponse(team, userID))
}

// GetMyTeam возвращает команду пользователя в охоте
func (h *TeamHandler) GetMyTeam(c *gin.Context) {
	huntID := c.MustGet("huntID").(uint)

	userID := currentUserID(c)
	team, err := h.teamService.GetMyTeam(huntID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTeamResponse(team, userID))
}

// SetPuzzleOrderRequest представляет запрос на фиксированный порядок загадок
type SetPuzzleOrderRequest struct {
	PuzzleIDs []uint `json:"puzzle_ids" binding:"required,min=1"`
}

// SetPuzzleOrder задает команде фиксированный порядок загадок (организаторам, до старта)
func (h *TeamHandler) SetPuzzleOrder(c *gin.Context) {
	teamID := c.MustGet("teamID").(uint)

	var req SetPuzzleOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.teamService.SetPuzzleOrder(teamID, currentUserID(c), req.PuzzleIDs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "puzzle order set"})
}
