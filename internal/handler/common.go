package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/hunt-api/internal/pkg/errors"
)

// respondError переводит ошибку сервиса в HTTP-ответ.
// Класс ошибки дает статус, код причины (если есть) уходит в поле "reason" —
// по нему клиент различает отказы с одинаковым статусом.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
	default:
		log.Printf("ERROR: Internal server error: %v", err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	body := gin.H{"error": err.Error()}
	if reason := apperrors.ReasonCode(err); reason != "" {
		body["reason"] = reason
	}
	c.JSON(status, body)
}

// currentUserID достает ID аутентифицированного пользователя из контекста
func currentUserID(c *gin.Context) uint {
	return c.MustGet("user_id").(uint)
}
