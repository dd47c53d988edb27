package controllers

import (
	"errors"
	"net/http"
	"strings"

	"iqr-control-backend/config"
	"iqr-control-backend/services"
	"iqr-control-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// parseID reads the :id path parameter and answers 400 when it is not a uuid
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// optionalUUID treats a missing or blank value as no reference
func optionalUUID(value *string) (*uuid.UUID, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*value))
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, utils.MsgUnauthorized)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, utils.MsgUnauthorized)
		return uuid.Nil, false
	}
	return id, true
}

// respondServiceError maps service errors onto status codes. Anything
// unexpected is logged and answered with failMessage.
func respondServiceError(c *gin.Context, err error, notFoundMessage, failMessage string) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		utils.RespondWithError(c, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, notFoundMessage)
	case errors.Is(err, services.ErrAlreadyPaid):
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgReceivableAlreadyPaid)
	case errors.Is(err, services.ErrUsernameTaken):
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgUsernameTaken)
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondWithError(c, http.StatusUnauthorized, utils.MsgLoginFailed)
	default:
		_ = c.Error(err)
		config.Log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, failMessage)
	}
}
