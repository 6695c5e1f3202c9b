package checkout

import (
	"errors"
	"net/http"

	"tourflo/internal/payments"
	"tourflo/internal/shared/middleware"
	"tourflo/internal/shared/utils/response"
	"tourflo/internal/slots"

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

func (c *Controller) Start(ctx *gin.Context) {
	var req StartCheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	if raw, ok := middleware.GetUserID(ctx); ok {
		if id, err := uuid.Parse(raw); err == nil {
			req.UserID = &id
		}
	}

	resp, err := c.service.Start(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, slots.ErrSlotNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Slot not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to start checkout", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Checkout started", resp, nil)
}

func (c *Controller) Get(ctx *gin.Context) {
	resp, err := c.service.Get(ctx.Request.Context(), ctx.Param("sessionId"))
	if err != nil {
		c.respondError(ctx, err, "Failed to load checkout session")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Checkout session retrieved", resp, nil)
}

func (c *Controller) SubmitGuestInfo(ctx *gin.Context) {
	var req GuestInfoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	resp, err := c.service.SubmitGuestInfo(ctx.Request.Context(), ctx.Param("sessionId"), GuestInfo{
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		WhatsappOptIn:   req.WhatsappOptIn,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		c.respondError(ctx, err, "Failed to submit guest info")
		return
	}

	if len(resp.FieldErrors) > 0 {
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Validation failed", resp, resp.FieldErrors)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Guest info saved", resp, nil)
}

func (c *Controller) SelectPaymentMethod(ctx *gin.Context) {
	var req PaymentMethodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.SelectPaymentMethod(ctx.Request.Context(), ctx.Param("sessionId"), payments.Method(req.Method))
	if err != nil {
		c.respondError(ctx, err, "Failed to select payment method")
		return
	}

	if len(resp.FieldErrors) > 0 {
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Validation failed", resp, resp.FieldErrors)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Payment method selected", resp, nil)
}

func (c *Controller) SubmitCardPayment(ctx *gin.Context) {
	var req CardDetails
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	resp, err := c.service.SubmitCardPayment(ctx.Request.Context(), ctx.Param("sessionId"), req)
	if err != nil {
		c.respondError(ctx, err, "Failed to process payment")
		return
	}

	if len(resp.FieldErrors) > 0 {
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Validation failed", resp, resp.FieldErrors)
		return
	}
	if resp.Status == StatusFailed {
		response.RespondJSON(ctx, "error", http.StatusBadGateway, resp.Message, resp, nil)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Booking confirmed", resp, nil)
}

func (c *Controller) JoinWaitlist(ctx *gin.Context) {
	resp, err := c.service.JoinWaitlist(ctx.Request.Context(), ctx.Param("sessionId"))
	if err != nil {
		c.respondError(ctx, err, "Failed to join waitlist")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, resp.Message, resp, nil)
}

func (c *Controller) Back(ctx *gin.Context) {
	resp, err := c.service.Back(ctx.Request.Context(), ctx.Param("sessionId"))
	if err != nil {
		c.respondError(ctx, err, "Failed to go back")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Moved back", resp, nil)
}

func (c *Controller) GoToStep(ctx *gin.Context) {
	var req GoToStepRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	resp, err := c.service.GoToStep(ctx.Request.Context(), ctx.Param("sessionId"), Step(req.Step))
	if err != nil {
		if errors.Is(err, ErrInvalidStep) {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Unknown step", nil, nil)
			return
		}
		c.respondError(ctx, err, "Failed to jump to step")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Moved to step", resp, nil)
}

func (c *Controller) Abandon(ctx *gin.Context) {
	if err := c.service.Abandon(ctx.Request.Context(), ctx.Param("sessionId")); err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to abandon checkout", nil, nil)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Checkout abandoned", nil, nil)
}

func (c *Controller) respondError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Checkout session not found or expired", nil, nil)
	case errors.Is(err, ErrWrongStep):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Operation not allowed at the current step", nil, nil)
	case errors.Is(err, ErrMethodRequired):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Select a payment method first", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, fallback, nil, nil)
	}
}
