package waitlist

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

func (c *Controller) Join(ctx *gin.Context) {
	var req JoinWaitlistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	var userID *uuid.UUID
	if raw, ok := middleware.GetUserID(ctx); ok {
		if id, err := uuid.Parse(raw); err == nil {
			userID = &id
		}
	}

	position, err := c.service.Join(ctx.Request.Context(), req.SlotID, userID, req.GuestName, req.GuestEmail, req.GuestPhone)
	if err != nil {
		if errors.Is(err, ErrQueueFull) {
			response.RespondJSON(ctx, "error", http.StatusConflict, "Waitlist is full", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to join waitlist", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Joined waitlist", JoinWaitlistResponse{Position: position}, nil)
}

func (c *Controller) Leave(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("entryId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid waitlist entry ID", nil, nil)
		return
	}

	if err := c.service.Leave(ctx.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrEntryNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Waitlist entry not found", nil, nil)
		case errors.Is(err, ErrInvalidStatus):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Waitlist entry cannot be cancelled", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to leave waitlist", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Left waitlist", nil, nil)
}

// Claim converts a notified entry, confirming the traveler wants the
// freed spot before their window closes
func (c *Controller) Claim(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("entryId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid waitlist entry ID", nil, nil)
		return
	}

	if err := c.service.Convert(ctx.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrEntryNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Waitlist entry not found", nil, nil)
		case errors.Is(err, ErrNothingToClaim):
			response.RespondJSON(ctx, "error", http.StatusGone, "Claim window has closed or no spot was offered", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to claim spot", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Spot claimed", nil, nil)
}

func (c *Controller) Position(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("entryId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid waitlist entry ID", nil, nil)
		return
	}

	resp, err := c.service.Position(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Waitlist entry not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get waitlist position", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Waitlist position retrieved", resp, nil)
}

func (c *Controller) ListBySlot(ctx *gin.Context) {
	slotID, err := uuid.Parse(ctx.Param("slotId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid slot ID", nil, nil)
		return
	}

	resp, err := c.service.ListBySlot(ctx.Request.Context(), slotID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list waitlist entries", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Waitlist entries retrieved", resp, nil)
}
