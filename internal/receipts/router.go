package receipts

import (
	"github.com/gin-gonic/gin"
)

func SetupReceiptRoutes(router *gin.RouterGroup, controller Controller) {
	router.GET("/receipts", controller.GetReceipts) // GET /api/v1/receipts?email=
}
