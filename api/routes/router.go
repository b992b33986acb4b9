package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "plugevents/docs"
	"plugevents/internal/appointments"
	"plugevents/internal/catalog"
	"plugevents/internal/metrics"
	"plugevents/internal/notifications"
	"plugevents/internal/payments"
	"plugevents/internal/purchase"
	"plugevents/internal/receipts"
	"plugevents/internal/shared/config"
	"plugevents/internal/shared/database"
	"plugevents/pkg/cache"
	"plugevents/pkg/logger"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	catalog   *catalog.Catalog
	gateway   payments.Gateway
	publisher notifications.Publisher

	// Wired by setupReceiptRoutes for the purchase flow
	receiptService receipts.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, cat *catalog.Catalog, gateway payments.Gateway, publisher notifications.Publisher) *Router {
	if publisher == nil {
		publisher = notifications.NoopPublisher{}
	}
	return &Router{
		config:    cfg,
		db:        db,
		catalog:   cat,
		gateway:   gateway,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupCatalogRoutes(api)

		// Receipts must come before purchase, which records into them.
		r.setupReceiptRoutes(api)
		r.setupPurchaseRoutes(api)
		r.setupAppointmentRoutes(api)
	}
}

func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			body := gin.H{
				"status":    "unhealthy",
				"timestamp": time.Now(),
				"service":   "plugevents-backend",
			}
			// Connection errors can carry hostnames; keep them out of public responses.
			if r.config.IsProduction() {
				logger.GetDefault().WithError(err).Warn("Health check failed")
			} else {
				body["error"] = err.Error()
			}
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "plugevents-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "operational",
			"api_version":     r.config.APIVersion,
			"payment_gateway": r.gateway.Name(),
			"postgres":        r.db.PostgreSQL != nil,
			"redis":           r.db.Redis != nil,
			"timestamp":       time.Now(),
		})
	})
}

// cacheService is nil when Redis is disabled.
func (r *Router) cacheService() cache.Service {
	if client := r.db.GetRedis(); client != nil {
		return cache.NewService(client)
	}
	return nil
}

func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) {
	catalogService := catalog.NewService(r.catalog, nil)
	if cacheService := r.cacheService(); cacheService != nil {
		catalogService.SetCacheService(cacheService)
	}

	catalog.SetupCatalogRoutes(rg, catalog.NewController(catalogService))
}

func (r *Router) setupReceiptRoutes(rg *gin.RouterGroup) {
	var repo receipts.Repository
	switch {
	case r.db.GetPostgreSQL() != nil:
		repo = receipts.NewGormRepository(r.db.GetPostgreSQL())
	case r.db.GetRedis() != nil:
		repo = receipts.NewRedisRepository(r.db.GetRedis())
	default:
		logger.GetDefault().Warn("No database configured: receipts are kept in memory")
		repo = receipts.NewMemoryRepository()
	}

	r.receiptService = receipts.NewService(repo)
	receipts.SetupReceiptRoutes(rg, receipts.NewController(r.receiptService))
}

func (r *Router) setupPurchaseRoutes(rg *gin.RouterGroup) {
	var store purchase.SessionStore
	if cacheService := r.cacheService(); cacheService != nil {
		store = purchase.NewRedisStore(cacheService, r.config.Redis.SessionTTL)
	} else {
		store = purchase.NewMemoryStore()
	}

	purchaseService := purchase.NewService(r.catalog, store, r.gateway, r.receiptService, purchase.Options{
		Currency:    r.config.Payment.Currency,
		CallbackURL: r.config.Payment.CallbackURL,
		CancelURL:   r.config.Payment.CancelURL,
	})
	purchaseService.SetNotificationPublisher(r.publisher)

	purchase.SetupPurchaseRoutes(rg, purchase.NewController(purchaseService))
	payments.SetupPaymentRoutes(rg, payments.NewController(purchaseService, r.gateway))
}

func (r *Router) setupAppointmentRoutes(rg *gin.RouterGroup) {
	var repo appointments.Repository
	if pg := r.db.GetPostgreSQL(); pg != nil {
		repo = appointments.NewGormRepository(pg)
	} else {
		repo = appointments.NewMemoryRepository()
	}

	appointmentService := appointments.NewService(repo, r.config.AppointmentInbox, nil)
	appointmentService.SetNotificationPublisher(r.publisher)

	appointments.SetupAppointmentRoutes(rg, appointments.NewController(appointmentService))
}
