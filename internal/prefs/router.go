package prefs

import (
	"tourflo/internal/shared/config"
	"tourflo/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

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

// SetupRoutes registers preference routes, all of them private
func (prefsRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	prefs := rg.Group("/prefs")
	prefs.Use(middleware.JWTAuthWithConfig(prefsRouter.config))
	{
		prefs.GET("/me", prefsRouter.controller.Get)
		prefs.PATCH("/me", prefsRouter.controller.Update)
		prefs.DELETE("/me", prefsRouter.controller.Reset)
	}
}
