package payments

import (
	"github.com/gin-gonic/gin"
)

func SetupPaymentRoutes(router *gin.RouterGroup, controller Controller) {
	payments := router.Group("/payments")
	{
		payments.GET("/callback", controller.Callback) // GET /api/v1/payments/callback?reference=
		payments.GET("/cancel", controller.Cancel)     // GET /api/v1/payments/cancel?reference=

		webhooks := payments.Group("/webhooks")
		webhooks.POST("/paystack", controller.PaystackWebhook)
		webhooks.POST("/stripe", controller.StripeWebhook)
	}
}
