package bookings

import (
	"tourflo/internal/shared/config"
	"tourflo/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles booking routes
type Router struct {
	controller *Controller
	config     *config.Config
}

func NewRouter(controller *Controller) *Router {
	return &Router{
		controller: controller,
		config:     config.Load(),
	}
}

// SetupRoutes registers all booking routes
func (bookingRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	{
		// Guest checkout posts bookings without a session; reference
		// lookup is how guests find their booking afterwards.
		bookings.POST("", bookingRouter.controller.Create)
		bookings.POST("/:id/confirm", bookingRouter.controller.Confirm)
		bookings.POST("/:id/retry", bookingRouter.controller.Retry)
		bookings.POST("/:id/cancel", bookingRouter.controller.Cancel)
		bookings.GET("/:id", bookingRouter.controller.GetByID)
		bookings.GET("/reference/:reference", bookingRouter.controller.GetByReference)

		protected := bookings.Group("")
		protected.Use(middleware.JWTAuthWithConfig(bookingRouter.config))
		{
			protected.GET("/me", bookingRouter.controller.ListMine)
		}
	}
}
