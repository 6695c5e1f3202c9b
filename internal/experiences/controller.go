package experiences

import (
	"errors"
	"net/http"
	"strconv"

	"tourflo/internal/shared/middleware"
	"tourflo/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

func (c *Controller) List(ctx *gin.Context) {
	filter := ListFilter{
		Region:   ctx.Query("region"),
		Category: ctx.Query("category"),
	}
	if v := ctx.Query("featured"); v != "" {
		featured := v == "true"
		filter.Featured = &featured
	}
	filter.Page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	resp, err := c.service.List(ctx.Request.Context(), filter)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list experiences", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Experiences retrieved successfully", resp, nil)
}

func (c *Controller) GetByID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid experience ID", nil, nil)
		return
	}

	resp, err := c.service.GetByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrExperienceNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Experience not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get experience", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Experience retrieved successfully", resp, nil)
}

func (c *Controller) Create(ctx *gin.Context) {
	operatorID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	var req CreateExperienceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.Create(ctx.Request.Context(), operatorID, req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create experience", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Experience created successfully", resp, nil)
}

func (c *Controller) Update(ctx *gin.Context) {
	operatorID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid experience ID", nil, nil)
		return
	}

	var req UpdateExperienceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.Update(ctx.Request.Context(), operatorID, id, req)
	if err != nil {
		if errors.Is(err, ErrExperienceNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Experience not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update experience", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Experience updated successfully", resp, nil)
}

func (c *Controller) Delete(ctx *gin.Context) {
	operatorID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid experience ID", nil, nil)
		return
	}

	if err := c.service.Delete(ctx.Request.Context(), operatorID, id); err != nil {
		if errors.Is(err, ErrExperienceNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Experience not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete experience", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Experience deleted successfully", nil, nil)
}

func (c *Controller) ToggleSaved(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid experience ID", nil, nil)
		return
	}

	resp, err := c.service.ToggleSaved(ctx.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, ErrExperienceNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Experience not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to toggle saved experience", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Saved state updated", resp, nil)
}

func (c *Controller) ListSaved(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	resp, err := c.service.ListSaved(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list saved experiences", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Saved experiences retrieved successfully", resp, nil)
}

func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, ok := middleware.GetUserID(ctx)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
