package prefs

import (
	"net/http"

	"tourflo/internal/shared/middleware"
	"tourflo/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	prefs, err := c.service.Get(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to load preferences", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Preferences retrieved successfully", prefs, nil)
}

func (c *Controller) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	var req UpdatePreferencesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, map[string]string{"body": err.Error()})
		return
	}

	prefs, err := c.service.Update(ctx.Request.Context(), userID, req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update preferences", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Preferences updated successfully", prefs, nil)
}

func (c *Controller) Reset(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	if err := c.service.Reset(ctx.Request.Context(), userID); err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to reset preferences", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Preferences reset successfully", nil, nil)
}
