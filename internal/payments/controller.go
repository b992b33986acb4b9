package payments

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"plugevents/internal/shared/utils/response"
	"plugevents/pkg/logger"
)

const maxWebhookBytes = 1 << 20

// Completer resolves pending attempts. The purchase flow implements it.
type Completer interface {
	Complete(ctx context.Context, result Result) error
	Verify(ctx context.Context, reference string) (*Result, error)
}

type Controller interface {
	Callback(c *gin.Context)
	Cancel(c *gin.Context)
	PaystackWebhook(c *gin.Context)
	StripeWebhook(c *gin.Context)
}

type controller struct {
	completer Completer
	gateway   Gateway
	logger    *logger.Logger
}

func NewController(completer Completer, gateway Gateway) Controller {
	return &controller{
		completer: completer,
		gateway:   gateway,
		logger:    logger.GetDefault(),
	}
}

type ReferenceQuery struct {
	Reference string `form:"reference" binding:"required"`
}

// Callback handles the viewer returning from a hosted checkout page. The
// gateway is asked for the real outcome; the query string is never trusted.
func (ctrl *controller) Callback(c *gin.Context) {
	var query ReferenceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Fail(c, http.StatusBadRequest, "Payment reference is required", err.Error())
		return
	}

	result, err := ctrl.completer.Verify(c.Request.Context(), query.Reference)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Payment status retrieved", result)
}

// Cancel handles the viewer closing the checkout page. The gateway is asked
// first; the attempt is only cancelled while the charge is still unpaid.
func (ctrl *controller) Cancel(c *gin.Context) {
	var query ReferenceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Fail(c, http.StatusBadRequest, "Payment reference is required", err.Error())
		return
	}

	ctx := c.Request.Context()
	result, err := ctrl.completer.Verify(ctx, query.Reference)
	if err != nil {
		ctrl.respondError(c, err)
		return
	}
	if result.Status.Resolved() {
		response.Success(c, http.StatusOK, "Payment status retrieved", result)
		return
	}

	cancelled := Result{
		Status:    StatusCancelled,
		Reference: query.Reference,
		Reason:    "closed by viewer",
	}
	if err := ctrl.completer.Complete(ctx, cancelled); err != nil {
		ctrl.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Payment cancelled", cancelled)
}

func (ctrl *controller) PaystackWebhook(c *gin.Context) {
	ctrl.handleWebhook(c, ProviderPaystack)
}

func (ctrl *controller) StripeWebhook(c *gin.Context) {
	ctrl.handleWebhook(c, ProviderStripe)
}

func (ctrl *controller) handleWebhook(c *gin.Context, provider string) {
	parser, ok := ctrl.gateway.(WebhookParser)
	if !ok || ctrl.gateway.Name() != provider {
		response.Fail(c, http.StatusNotFound, "Payment provider is not enabled", nil)
		return
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBytes))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Failed to read request body", nil)
		return
	}

	result, err := parser.ParseWebhook(payload, c.Request.Header)
	if err != nil {
		ctrl.logger.WarnContext(c.Request.Context(), "Rejected payment webhook",
			"provider", provider, "error", err.Error())
		response.Fail(c, http.StatusBadRequest, "Invalid webhook", nil)
		return
	}
	if result == nil || !result.Status.Resolved() {
		response.Success(c, http.StatusOK, "Event ignored", gin.H{"received": true})
		return
	}

	if err := ctrl.completer.Complete(c.Request.Context(), *result); err != nil {
		if errors.Is(err, ErrUnknownReference) {
			// Acknowledge so the provider stops redelivering events for sessions we no longer hold.
			ctrl.logger.WarnContext(c.Request.Context(), "Webhook for unknown reference",
				"provider", provider, "reference", result.Reference)
			response.Success(c, http.StatusOK, "Unknown reference", gin.H{"received": true})
			return
		}
		ctrl.logger.ErrorWithContext(c.Request.Context(), "Failed to complete payment from webhook", err,
			map[string]interface{}{"provider": provider, "reference": result.Reference})
		response.Fail(c, http.StatusInternalServerError, "Failed to process webhook", nil)
		return
	}

	response.Success(c, http.StatusOK, "Webhook processed", gin.H{"received": true})
}

func (ctrl *controller) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnknownReference):
		response.Fail(c, http.StatusNotFound, "Unknown payment reference", nil)
	case errors.Is(err, ErrGatewayRejected):
		response.Fail(c, http.StatusBadGateway, err.Error(), nil)
	default:
		response.Fail(c, http.StatusInternalServerError, err.Error(), nil)
	}
}
