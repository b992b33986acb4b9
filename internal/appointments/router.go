package appointments

import (
	"github.com/gin-gonic/gin"
)

func SetupAppointmentRoutes(router *gin.RouterGroup, controller Controller) {
	router.POST("/appointments", controller.CreateAppointment) // POST /api/v1/appointments
}
