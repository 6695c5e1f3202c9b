package checkout

import (
	"github.com/gin-gonic/gin"
)

// Router handles checkout routes. Checkout works for guests too, so no
// auth middleware sits in front; an authenticated user is picked up from
// the token when present.
type Router struct {
	controller *Controller
}

func NewRouter(controller *Controller) *Router {
	return &Router{controller: controller}
}

// SetupRoutes registers all checkout routes
func (checkoutRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	checkout := rg.Group("/checkout")
	{
		checkout.POST("", checkoutRouter.controller.Start)
		checkout.GET("/:sessionId", checkoutRouter.controller.Get)
		checkout.POST("/:sessionId/guest-info", checkoutRouter.controller.SubmitGuestInfo)
		checkout.POST("/:sessionId/payment-method", checkoutRouter.controller.SelectPaymentMethod)
		checkout.POST("/:sessionId/card-payment", checkoutRouter.controller.SubmitCardPayment)
		checkout.POST("/:sessionId/waitlist", checkoutRouter.controller.JoinWaitlist)
		checkout.POST("/:sessionId/back", checkoutRouter.controller.Back)
		checkout.POST("/:sessionId/goto", checkoutRouter.controller.GoToStep)
		checkout.DELETE("/:sessionId", checkoutRouter.controller.Abandon)
	}
}
