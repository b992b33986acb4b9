package purchase

import (
	"github.com/gin-gonic/gin"
)

func SetupPurchaseRoutes(router *gin.RouterGroup, controller Controller) {
	sessions := router.Group("/sessions")
	{
		sessions.POST("", controller.OpenSession)                        // POST /api/v1/sessions
		sessions.GET("/:sessionId", controller.GetSession)               // GET /api/v1/sessions/:sessionId
		sessions.DELETE("/:sessionId", controller.AbandonSession)        // DELETE /api/v1/sessions/:sessionId
		sessions.PUT("/:sessionId/tier", controller.SelectTier)          // PUT /api/v1/sessions/:sessionId/tier
		sessions.POST("/:sessionId/quantity", controller.ChangeQuantity) // POST /api/v1/sessions/:sessionId/quantity
		sessions.POST("/:sessionId/book", controller.RequestBooking)     // POST /api/v1/sessions/:sessionId/book
		sessions.PUT("/:sessionId/contact", controller.SetEmail)         // PUT /api/v1/sessions/:sessionId/contact
		sessions.POST("/:sessionId/contact/cancel", controller.CancelContact)
		sessions.POST("/:sessionId/pay", controller.Pay) // POST /api/v1/sessions/:sessionId/pay
		sessions.POST("/:sessionId/another", controller.BookAnother)
	}
}
