package bookings

import (
	"errors"
	"net/http"
	"strconv"

	"tourflo/internal/payments"
	"tourflo/internal/shared/middleware"
	"tourflo/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"tourflo/internal/slots"
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
	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}
	if !req.Method.IsValid() {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil,
			map[string]string{"method": "unsupported payment method"})
		return
	}

	// Authenticated travelers get the booking attached to their account
	if raw, ok := middleware.GetUserID(ctx); ok {
		if id, err := uuid.Parse(raw); err == nil {
			req.UserID = &id
		}
	}

	resp, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create booking", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking created successfully", resp, nil)
}

func (c *Controller) Confirm(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	resp, err := c.service.Confirm(ctx.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case errors.Is(err, ErrInvalidStatusChange):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Booking is not in a confirmable state", nil, nil)
		case errors.Is(err, slots.ErrSlotFull):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Slot is full", nil, nil)
		case errors.Is(err, payments.ErrInvalidMethod):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Unsupported payment method", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to confirm booking", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking confirmed successfully", resp, nil)
}

func (c *Controller) Retry(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	resp, err := c.service.Retry(ctx.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case errors.Is(err, ErrInvalidStatusChange):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Only failed bookings can be retried", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to retry booking", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking reset for retry", resp, nil)
}

func (c *Controller) Cancel(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	var userID *uuid.UUID
	if raw, ok := middleware.GetUserID(ctx); ok {
		if parsed, perr := uuid.Parse(raw); perr == nil {
			userID = &parsed
		}
	}

	resp, err := c.service.Cancel(ctx.Request.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case errors.Is(err, ErrBookingNotCancelable):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Booking cannot be cancelled", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to cancel booking", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking cancelled successfully", resp, nil)
}

func (c *Controller) GetByID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	resp, err := c.service.GetByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get booking", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", resp, nil)
}

func (c *Controller) GetByReference(ctx *gin.Context) {
	ref := ctx.Param("reference")
	if ref == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Booking reference is required", nil, nil)
		return
	}

	resp, err := c.service.GetByReference(ctx.Request.Context(), ref)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to look up booking reference", nil, nil)
		return
	}
	if len(resp) == 0 {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "No bookings found for reference", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", resp, nil)
}

func (c *Controller) ListMine(ctx *gin.Context) {
	raw, ok := middleware.GetUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	resp, err := c.service.ListByUser(ctx.Request.Context(), userID, page, pageSize)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list bookings", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", resp, nil)
}
