package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"plugevents/internal/shared/utils/response"
)

// ListingPath is where the website sends viewers after a failed event lookup.
const ListingPath = "/events"

type Controller interface {
	GetAllEvents(c *gin.Context)
	GetFeaturedEvents(c *gin.Context)
	GetEvent(c *gin.Context)
	GetRelatedEvents(c *gin.Context)
	GetCategories(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetAllEvents(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	events, err := ctrl.service.ListEvents(c.Request.Context(), query)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Events retrieved successfully", events)
}

func (ctrl *controller) GetFeaturedEvents(c *gin.Context) {
	var query LimitQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	events, err := ctrl.service.GetFeaturedEvents(c.Request.Context(), query.Limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Featured events retrieved successfully", events)
}

func (ctrl *controller) GetEvent(c *gin.Context) {
	detail, err := ctrl.service.GetEvent(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		RespondLookupError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Event retrieved successfully", detail)
}

func (ctrl *controller) GetRelatedEvents(c *gin.Context) {
	var query LimitQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	events, err := ctrl.service.GetRelatedEvents(c.Request.Context(), c.Param("eventId"), query.Limit)
	if err != nil {
		RespondLookupError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Related events retrieved successfully", events)
}

func (ctrl *controller) GetCategories(c *gin.Context) {
	categories, err := ctrl.service.GetCategories(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Categories retrieved successfully", categories)
}

// RespondLookupError turns a catalog miss into a 404 carrying the listing redirect.
func RespondLookupError(c *gin.Context, err error) {
	if errors.Is(err, ErrEventNotFound) {
		response.Fail(c, http.StatusNotFound, "Event not found", response.Redirect{Redirect: ListingPath})
		return
	}
	response.Fail(c, http.StatusInternalServerError, err.Error(), nil)
}
