package purchase

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plugevents/internal/payments"
	"plugevents/internal/shared/utils/response"
)

func setupTestRouter(t *testing.T, gateway payments.Gateway) (*gin.Engine, *fixture) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f, svc := newFixture(t, gateway)
	router := gin.New()
	SetupPurchaseRoutes(router.Group("/api/v1"), NewController(svc))
	return router, f
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, response.StandardApiResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp response.StandardApiResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func decodeData(t *testing.T, data interface{}, dest interface{}) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dest))
}

func TestController_PurchaseFlow(t *testing.T) {
	router, f := setupTestRouter(t, payments.NewMockGateway(payments.MockSuccess))

	w, body := doJSON(t, router, http.MethodPost, "/api/v1/sessions", gin.H{"event_id": "igbo-amaka-festival"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var session SessionResponse
	decodeData(t, body.Data, &session)
	assert.Equal(t, StateBrowsing, session.State)
	base := "/api/v1/sessions/" + session.ID

	w, _ = doJSON(t, router, http.MethodPut, base+"/tier", gin.H{"tier": "VIP"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, body = doJSON(t, router, http.MethodPost, base+"/quantity", gin.H{"delta": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var qty QuantityResponse
	decodeData(t, body.Data, &qty)
	assert.True(t, qty.Accepted)
	assert.Equal(t, int64(10000), qty.Session.Quote.Total)

	w, _ = doJSON(t, router, http.MethodPost, base+"/book", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = doJSON(t, router, http.MethodPut, base+"/contact", gin.H{"email": "a@b.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, body = doJSON(t, router, http.MethodPost, base+"/pay", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var paid PaymentResponse
	decodeData(t, body.Data, &paid)
	assert.Equal(t, StateAwaitingPayment, paid.Session.State)
	assert.Equal(t, "PLUG-123", paid.Checkout.Reference)
	assert.Equal(t, int64(1000000), f.gateway.Requests()[0].AmountMinor)

	// Tier changes are refused while a payment is outstanding.
	w, _ = doJSON(t, router, http.MethodPut, base+"/tier", gin.H{"tier": "standard"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestController_QuantityOutOfRangeIsAccepted200(t *testing.T) {
	router, _ := setupTestRouter(t, payments.NewMockGateway(payments.MockSuccess))

	_, body := doJSON(t, router, http.MethodPost, "/api/v1/sessions", gin.H{"event_id": "igbo-amaka-festival"})
	var session SessionResponse
	decodeData(t, body.Data, &session)

	w, body := doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+session.ID+"/quantity", gin.H{"delta": -1})
	require.Equal(t, http.StatusOK, w.Code)
	var qty QuantityResponse
	decodeData(t, body.Data, &qty)
	assert.False(t, qty.Accepted)
	assert.Equal(t, 1, qty.Session.Selection.Quantity)

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+session.ID+"/quantity", gin.H{"delta": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestController_ErrorMapping(t *testing.T) {
	router, _ := setupTestRouter(t, payments.NewMockGateway(payments.MockSuccess))

	w, body := doJSON(t, router, http.MethodPost, "/api/v1/sessions", gin.H{"event_id": "nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	errs, ok := body.Errors.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "/events", errs["redirect"])

	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/sessions", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/sessions/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, body = doJSON(t, router, http.MethodPost, "/api/v1/sessions", gin.H{"event_id": "night-of-fashion"})
	var past SessionResponse
	decodeData(t, body.Data, &past)
	assert.Equal(t, StateUnavailable, past.State)
	w, _ = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+past.ID+"/book", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	_, body = doJSON(t, router, http.MethodPost, "/api/v1/sessions", gin.H{"event_id": "igbo-amaka-festival"})
	var session SessionResponse
	decodeData(t, body.Data, &session)
	base := "/api/v1/sessions/" + session.ID

	w, _ = doJSON(t, router, http.MethodPut, base+"/tier", gin.H{"tier": "backstage"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	doJSON(t, router, http.MethodPost, base+"/book", nil)
	doJSON(t, router, http.MethodPut, base+"/contact", gin.H{"email": "nobody"})
	w, body = doJSON(t, router, http.MethodPost, base+"/pay", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errs, ok = body.Errors.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, errs["can_pay"])

	w, _ = doJSON(t, router, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, router, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestController_GatewayFailureIs502(t *testing.T) {
	router, _ := setupTestRouter(t, &failingGateway{})

	_, body := doJSON(t, router, http.MethodPost, "/api/v1/sessions", gin.H{"event_id": "igbo-amaka-festival"})
	var session SessionResponse
	decodeData(t, body.Data, &session)
	base := "/api/v1/sessions/" + session.ID

	doJSON(t, router, http.MethodPost, base+"/book", nil)
	doJSON(t, router, http.MethodPut, base+"/contact", gin.H{"email": "a@b.com"})

	w, _ := doJSON(t, router, http.MethodPost, base+"/pay", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w, body = doJSON(t, router, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, body.Data, &session)
	assert.Equal(t, StateCollectingContact, session.State)
}
