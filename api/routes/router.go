// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"tourflo/internal/auth"
	"tourflo/internal/bookings"
	"tourflo/internal/cancellation"
	"tourflo/internal/checkout"
	"tourflo/internal/experiences"
	"tourflo/internal/notifications"
	"tourflo/internal/payments"
	"tourflo/internal/prefs"
	"tourflo/internal/shared/config"
	"tourflo/internal/shared/database"
	"tourflo/internal/slots"
	"tourflo/internal/waitlist"
	"tourflo/pkg/cache"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config        *config.Config
	db            *database.DB
	cacheService  cache.Service
	notifications notifications.NotificationService

	// Services shared across route groups
	experienceService experiences.Service
	slotService       slots.Service
	bookingService    bookings.Service
	waitlistService   waitlist.Service
	waitlistRepo      waitlist.Repository
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, notificationService notifications.NotificationService) *Router {
	return &Router{
		config:        cfg,
		db:            db,
		cacheService:  cache.NewService(db.GetRedisClient()),
		notifications: notificationService,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupExperienceRoutes(api)
		r.setupSlotRoutes(api)
		// Waitlist before bookings: a cancelled booking hands its freed
		// spots to the waitlist queue
		r.setupWaitlistRoutes(api)
		r.setupBookingRoutes(api)
		r.setupCheckoutRoutes(api)
		r.setupCancellationRoutes(api)
		r.setupPrefsRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "tourflo-backend",
			})
			return
		}

		status := gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "tourflo-backend",
		}
		if r.notifications != nil {
			if err := r.notifications.HealthCheck(c.Request.Context()); err != nil {
				status["notifications"] = err.Error()
			}
		}

		c.JSON(http.StatusOK, status)
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController)

	authRouter.SetupRoutes(rg)
}

func (r *Router) setupExperienceRoutes(rg *gin.RouterGroup) {
	experienceRepo := experiences.NewRepository(r.db.GetPostgreSQL())
	r.experienceService = experiences.NewService(experienceRepo, r.cacheService)
	experienceController := experiences.NewController(r.experienceService)
	experienceRouter := experiences.NewRouter(experienceController)

	experienceRouter.SetupRoutes(rg)
}

func (r *Router) setupSlotRoutes(rg *gin.RouterGroup) {
	slotRepo := slots.NewRepository(r.db.GetPostgreSQL())
	r.slotService = slots.NewService(slotRepo, r.cacheService)
	slotController := slots.NewController(r.slotService)
	slotRouter := slots.NewRouter(slotController)

	slotRouter.SetupRoutes(rg)
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	processor := payments.NewSimulatedProcessor(nil, r.config.Payments.ProcessingDelay)

	var notifier bookings.Notifier
	if r.notifications != nil {
		notifier = notifications.NewBookingNotifier(r.notifications, r.experienceService, r.slotService)
	}

	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	r.bookingService = bookings.NewService(bookingRepo, r.slotService, processor, notifier, r.waitlistService, r.config.Checkout.ReferencePrefix)
	bookingController := bookings.NewController(r.bookingService)
	bookingRouter := bookings.NewRouter(bookingController)

	bookingRouter.SetupRoutes(rg)
}

func (r *Router) setupWaitlistRoutes(rg *gin.RouterGroup) {
	var notifier waitlist.Notifier
	if r.notifications != nil {
		notifier = notifications.NewWaitlistSpotNotifier(r.notifications, r.experienceService, r.slotService)
	}

	r.waitlistRepo = waitlist.NewRepository(r.db.GetPostgreSQL(), r.db.GetRedisClient())
	r.waitlistService = waitlist.NewService(r.waitlistRepo, notifier)
	waitlistController := waitlist.NewController(r.waitlistService)
	waitlistRouter := waitlist.NewRouter(waitlistController)

	waitlistRouter.SetupRoutes(rg)
}

// setupCheckoutRoutes wires the step flow against the slot, booking and
// waitlist services registered before it
func (r *Router) setupCheckoutRoutes(rg *gin.RouterGroup) {
	sessionStore := checkout.NewRedisSessionStore(r.cacheService, r.config.Checkout.SessionTTL)
	checkoutService := checkout.NewService(sessionStore, r.slotService, r.bookingService, r.waitlistService)
	checkoutController := checkout.NewController(checkoutService)
	checkoutRouter := checkout.NewRouter(checkoutController)

	checkoutRouter.SetupRoutes(rg)
}

func (r *Router) setupCancellationRoutes(rg *gin.RouterGroup) {
	var waitlistNotifier cancellation.WaitlistNotifier
	var guideNotifier cancellation.GuideNotifier
	if r.notifications != nil {
		authRepo := auth.NewRepository(r.db.GetPostgreSQL())
		userDirectory := auth.NewUserServiceAdapter(authRepo)
		slotNotifier := notifications.NewSlotCancellationNotifier(r.notifications, r.waitlistService, r.slotService, r.experienceService, userDirectory)
		waitlistNotifier = slotNotifier
		guideNotifier = slotNotifier
	}

	cancellationRepo := cancellation.NewRepository(r.db.GetPostgreSQL())
	cancellationService := cancellation.NewService(cancellationRepo, r.bookingService, r.slotService, r.waitlistService, waitlistNotifier, guideNotifier)
	cancellationController := cancellation.NewController(cancellationService)
	cancellationRouter := cancellation.NewRouter(cancellationController)

	cancellationRouter.SetupRoutes(rg)
}

func (r *Router) setupPrefsRoutes(rg *gin.RouterGroup) {
	prefsStore := prefs.NewRedisStore(r.db.GetRedisClient())
	prefsService := prefs.NewService(prefsStore, r.config.Payments.DefaultCurrency)
	prefsController := prefs.NewController(prefsService)
	prefsRouter := prefs.NewRouter(prefsController)

	prefsRouter.SetupRoutes(rg)
}

// WaitlistComponents exposes the waitlist pieces the server needs for the
// background sweeper
func (r *Router) WaitlistComponents() (waitlist.Repository, waitlist.Service) {
	return r.waitlistRepo, r.waitlistService
}
