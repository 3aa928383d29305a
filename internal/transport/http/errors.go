package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookwell/backend/internal/service/appointments"
	"bookwell/backend/internal/service/billing"
	"bookwell/backend/internal/service/directory"
	"bookwell/backend/internal/store"
)

// respondError maps service and store errors onto the API's status codes.
// Conflicts keep the dashboard's contract: 409 with the offending
// appointment's id under "conflictId".
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var conflict *store.ConflictError
	switch {
	case errors.As(err, &conflict):
		body := gin.H{"error": "Time conflict with another appointment"}
		if conflict.ConflictingID != uuid.Nil {
			body["conflictId"] = conflict.ConflictingID
		}
		c.JSON(http.StatusConflict, body)
	case isValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, store.ErrInvalidReference):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Referenced record does not exist"})
	case errors.Is(err, store.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
	default:
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func isValidation(err error) bool {
	var apptErr *appointments.ValidationError
	var dirErr *directory.ValidationError
	var billErr *billing.ValidationError
	return errors.As(err, &apptErr) || errors.As(err, &dirErr) || errors.As(err, &billErr)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
