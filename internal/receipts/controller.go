package receipts

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plugevents/internal/shared/utils/response"
)

type Controller interface {
	GetReceipts(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetReceipts(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Fail(c, http.StatusBadRequest, "An email is required", err.Error())
		return
	}

	receipts, err := ctrl.service.ListByEmail(c.Request.Context(), query.Email)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Receipts retrieved successfully", receipts)
}
