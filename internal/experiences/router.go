package experiences

import (
	"tourflo/internal/shared/config"
	"tourflo/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles experience catalog routes
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

// SetupRoutes registers all experience routes
func (expRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	experiences := rg.Group("/experiences")
	{
		// Public catalog
		experiences.GET("", expRouter.controller.List)
		experiences.GET("/:id", expRouter.controller.GetByID)

		// Traveler bookmarks
		saved := experiences.Group("")
		saved.Use(middleware.JWTAuthWithConfig(expRouter.config))
		{
			saved.POST("/:id/save", expRouter.controller.ToggleSaved)
			saved.GET("/saved/me", expRouter.controller.ListSaved)
		}

		// Operator management
		operator := experiences.Group("")
		operator.Use(middleware.JWTAuthWithConfig(expRouter.config))
		operator.Use(middleware.RequireOperator())
		{
			operator.POST("", expRouter.controller.Create)
			operator.PUT("/:id", expRouter.controller.Update)
			operator.DELETE("/:id", expRouter.controller.Delete)
		}
	}
}
