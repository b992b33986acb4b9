package purchase

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"plugevents/internal/catalog"
	"plugevents/internal/shared/utils/response"
)

type Controller interface {
	OpenSession(c *gin.Context)
	GetSession(c *gin.Context)
	SelectTier(c *gin.Context)
	ChangeQuantity(c *gin.Context)
	RequestBooking(c *gin.Context)
	SetEmail(c *gin.Context)
	CancelContact(c *gin.Context)
	Pay(c *gin.Context)
	BookAnother(c *gin.Context)
	AbandonSession(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// OpenSession starts a purchase session. An unknown event answers 404 with a
// redirect to the listing.
func (ctrl *controller) OpenSession(c *gin.Context) {
	var req OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	session, err := ctrl.service.Open(c.Request.Context(), req.EventID)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	response.Success(c, http.StatusCreated, "Session opened", session)
}

func (ctrl *controller) GetSession(c *gin.Context) {
	session, err := ctrl.service.Get(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err, nil)
		return
	}

	response.Success(c, http.StatusOK, "Session retrieved", session)
}

func (ctrl *controller) SelectTier(c *gin.Context) {
	var req SelectTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	session, err := ctrl.service.SelectTier(c.Request.Context(), c.Param("sessionId"), req.Tier)
	if err != nil {
		respondError(c, err, session)
		return
	}

	response.Success(c, http.StatusOK, "Tier selected", session)
}

// ChangeQuantity always answers 200 for an in-state request; Accepted tells
// whether the change stayed within range.
func (ctrl *controller) ChangeQuantity(c *gin.Context) {
	var req ChangeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	result, err := ctrl.service.ChangeQuantity(c.Request.Context(), c.Param("sessionId"), req.Delta)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	message := "Quantity updated"
	if !result.Accepted {
		message = "Quantity unchanged"
	}
	response.Success(c, http.StatusOK, message, result)
}

func (ctrl *controller) RequestBooking(c *gin.Context) {
	session, err := ctrl.service.RequestBooking(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err, session)
		return
	}

	response.Success(c, http.StatusOK, "Enter an email to continue", session)
}

func (ctrl *controller) SetEmail(c *gin.Context) {
	var req SetEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	session, err := ctrl.service.SetEmail(c.Request.Context(), c.Param("sessionId"), req.Email)
	if err != nil {
		respondError(c, err, session)
		return
	}

	response.Success(c, http.StatusOK, "Email updated", session)
}

func (ctrl *controller) CancelContact(c *gin.Context) {
	session, err := ctrl.service.CancelContact(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err, session)
		return
	}

	response.Success(c, http.StatusOK, "Back to ticket selection", session)
}

// Pay hands the current selection to the gateway and returns the checkout URL.
func (ctrl *controller) Pay(c *gin.Context) {
	result, err := ctrl.service.Pay(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		var session *SessionResponse
		if result != nil {
			session = result.Session
		}
		respondError(c, err, session)
		return
	}

	response.Success(c, http.StatusOK, "Redirect to checkout", result)
}

func (ctrl *controller) BookAnother(c *gin.Context) {
	session, err := ctrl.service.BookAnother(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err, session)
		return
	}

	response.Success(c, http.StatusOK, "Ready for another booking", session)
}

func (ctrl *controller) AbandonSession(c *gin.Context) {
	if err := ctrl.service.Abandon(c.Request.Context(), c.Param("sessionId")); err != nil {
		respondError(c, err, nil)
		return
	}

	response.Success(c, http.StatusOK, "Session closed", nil)
}

// respondError maps flow errors to HTTP. The session view, when present, is
// returned alongside so the widget can re-render.
func respondError(c *gin.Context, err error, session *SessionResponse) {
	switch {
	case errors.Is(err, ErrEventNotFound):
		catalog.RespondLookupError(c, err)
	case errors.Is(err, ErrSessionNotFound):
		response.Fail(c, http.StatusNotFound, "Session not found", nil)
	case errors.Is(err, ErrEventUnavailable):
		response.Fail(c, http.StatusConflict, "This event has already taken place", session)
	case errors.Is(err, ErrInvalidEmail):
		response.Fail(c, http.StatusUnprocessableEntity, err.Error(), gin.H{"can_pay": false, "session": session})
	case errors.Is(err, ErrUnknownTier):
		response.Fail(c, http.StatusUnprocessableEntity, err.Error(), session)
	case errors.Is(err, ErrInvalidTransition):
		response.Fail(c, http.StatusConflict, err.Error(), session)
	case errors.Is(err, ErrPaymentInitiation):
		response.Fail(c, http.StatusBadGateway, err.Error(), session)
	default:
		response.Fail(c, http.StatusInternalServerError, err.Error(), nil)
	}
}
