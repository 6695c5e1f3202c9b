package waitlist

import (
	"tourflo/internal/shared/config"
	"tourflo/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles waitlist routes
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

// SetupRoutes registers all waitlist routes
func (waitlistRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	waitlist := rg.Group("/waitlist")
	{
		// Guests can join, claim and check position without an account,
		// so the emailed claim link works for everyone
		waitlist.POST("/join", waitlistRouter.controller.Join)
		waitlist.POST("/:entryId/claim", waitlistRouter.controller.Claim)
		waitlist.GET("/:entryId/position", waitlistRouter.controller.Position)
		waitlist.DELETE("/:entryId", waitlistRouter.controller.Leave)

		operator := waitlist.Group("")
		operator.Use(middleware.JWTAuthWithConfig(waitlistRouter.config))
		operator.Use(middleware.RequireOperator())
		{
			operator.GET("/slot/:slotId", waitlistRouter.controller.ListBySlot)
		}
	}
}
