package slots

import (
	"tourflo/internal/shared/config"
	"tourflo/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles slot routes
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

// SetupRoutes registers all slot routes
func (slotRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	slots := rg.Group("/slots")
	{
		slots.GET("/:id", slotRouter.controller.GetByID)
		slots.GET("/:id/availability", slotRouter.controller.Availability)
		slots.GET("/experience/:experienceId", slotRouter.controller.ListByExperience)

		operator := slots.Group("")
		operator.Use(middleware.JWTAuthWithConfig(slotRouter.config))
		operator.Use(middleware.RequireOperator())
		{
			operator.POST("", slotRouter.controller.Create)
		}
	}
}
