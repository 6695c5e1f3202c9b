package cancellation

import (
	"errors"
	"net/http"

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

func (c *Controller) CancelSlot(ctx *gin.Context) {
	operatorID, ok := operatorFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	var req CancelSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.CancelSlot(ctx.Request.Context(), operatorID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidReason):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil,
				map[string]string{"reason": "unknown cancellation reason"})
		case errors.Is(err, ErrAlreadyCancelled):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Slot is already cancelled", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to cancel slot", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Slot cancelled", resp, nil)
}

func (c *Controller) GetByID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid cancellation ID", nil, nil)
		return
	}

	resp, err := c.service.GetByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCancellationNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Cancellation not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get cancellation", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Cancellation retrieved", resp, nil)
}

func (c *Controller) ListMine(ctx *gin.Context) {
	operatorID, ok := operatorFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	resp, err := c.service.ListByOperator(ctx.Request.Context(), operatorID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list cancellations", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Cancellations retrieved", resp, nil)
}

func operatorFromContext(ctx *gin.Context) (uuid.UUID, bool) {
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
