package appointments

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"plugevents/internal/shared/utils/response"
)

type Controller interface {
	CreateAppointment(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	appointment, err := ctrl.service.Request(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAppointment), errors.Is(err, ErrDateInPast):
			response.Fail(c, http.StatusBadRequest, err.Error(), nil)
		default:
			response.Fail(c, http.StatusInternalServerError, "Failed to submit appointment request", nil)
		}
		return
	}

	response.Success(c, http.StatusCreated, "Appointment request sent", appointment)
}
