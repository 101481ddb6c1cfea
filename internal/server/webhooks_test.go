package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	billingdomain "github.com/neighborhq/memberdesk/internal/billing/domain"
	"github.com/stretchr/testify/assert"
)

type stubBillingService struct {
	err      error
	payloads [][]byte
}

func (s *stubBillingService) Ingest(ctx context.Context, payload []byte, headers http.Header) error {
	s.payloads = append(s.payloads, payload)
	return s.err
}

func newWebhookTestServer(stub *stubBillingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.HandleMethodNotAllowed = true

	srv := &Server{engine: r, billingSvc: stub}
	srv.registerWebhookRoutes()
	return r
}

func postWebhook(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", strings.NewReader(body))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookRejectsNonPost(t *testing.T) {
	r := newWebhookTestServer(&stubBillingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/webhooks/stripe", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestWebhookAcknowledgesProcessedEvent(t *testing.T) {
	stub := &stubBillingService{}
	r := newWebhookTestServer(stub)

	w := postWebhook(r, `{"id":"evt_1","type":"subscription.created"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received": true}`, w.Body.String())
	assert.Len(t, stub.payloads, 1)
}

func TestWebhookMissingSecretIsServerError(t *testing.T) {
	r := newWebhookTestServer(&stubBillingService{err: billingdomain.ErrSecretNotConfigured})
	w := postWebhook(r, `{}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWebhookBadSignatureIsBadRequest(t *testing.T) {
	for _, err := range []error{
		billingdomain.ErrMissingSignature,
		billingdomain.ErrInvalidSignature,
	} {
		r := newWebhookTestServer(&stubBillingService{err: err})
		w := postWebhook(r, `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code, "error: %v", err)
	}
}

func TestWebhookProcessingFailureIsServerError(t *testing.T) {
	r := newWebhookTestServer(&stubBillingService{err: context.DeadlineExceeded})
	w := postWebhook(r, `{"id":"evt_1","type":"subscription.created"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
