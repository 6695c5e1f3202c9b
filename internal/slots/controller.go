package slots

import (
	"errors"
	"net/http"
	"time"

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

func (c *Controller) Create(ctx *gin.Context) {
	var req CreateSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create slot", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Slot created successfully", resp, nil)
}

func (c *Controller) GetByID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid slot ID", nil, nil)
		return
	}

	resp, err := c.service.GetByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Slot not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get slot", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Slot retrieved successfully", resp, nil)
}

func (c *Controller) ListByExperience(ctx *gin.Context) {
	experienceID, err := uuid.Parse(ctx.Param("experienceId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid experience ID", nil, nil)
		return
	}

	var from, to time.Time
	if v := ctx.Query("from"); v != "" {
		from, err = time.Parse("2006-01-02", v)
		if err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD", nil, nil)
			return
		}
	}
	if v := ctx.Query("to"); v != "" {
		to, err = time.Parse("2006-01-02", v)
		if err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD", nil, nil)
			return
		}
	}

	resp, err := c.service.ListByExperience(ctx.Request.Context(), experienceID, from, to)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list slots", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Slots retrieved successfully", resp, nil)
}

func (c *Controller) Availability(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid slot ID", nil, nil)
		return
	}

	resp, err := c.service.Availability(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Slot not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get slot availability", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Availability retrieved successfully", resp, nil)
}
