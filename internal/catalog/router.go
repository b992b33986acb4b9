package catalog

import (
	"github.com/gin-gonic/gin"
)

func SetupCatalogRoutes(router *gin.RouterGroup, controller Controller) {
	events := router.Group("/events")
	{
		events.GET("", controller.GetAllEvents)                      // GET /api/v1/events?category=
		events.GET("/featured", controller.GetFeaturedEvents)        // GET /api/v1/events/featured?limit=
		events.GET("/:eventId", controller.GetEvent)                 // GET /api/v1/events/:eventId
		events.GET("/:eventId/related", controller.GetRelatedEvents) // GET /api/v1/events/:eventId/related?limit=
	}

	router.GET("/categories", controller.GetCategories) // GET /api/v1/categories
}
