package cancellation

import (
	"tourflo/internal/shared/config"
	"tourflo/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles operator cancellation routes
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

// SetupRoutes registers all cancellation routes. Everything here is
// operator-only.
func (cancellationRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	cancellations := rg.Group("/operator/cancellations")
	cancellations.Use(middleware.JWTAuthWithConfig(cancellationRouter.config))
	cancellations.Use(middleware.RequireOperator())
	{
		cancellations.POST("", cancellationRouter.controller.CancelSlot)
		cancellations.GET("", cancellationRouter.controller.ListMine)
		cancellations.GET("/:id", cancellationRouter.controller.GetByID)
	}
}
