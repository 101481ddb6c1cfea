package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	billingdomain "github.com/neighborhq/memberdesk/internal/billing/domain"
)

// HandleStripeWebhook acknowledges verified deliveries with 200 so the
// provider stops retrying, and answers 500 for processing failures so
// it retries later. Signature problems are the caller's fault: 400.
func (s *Server) HandleStripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	err = s.billingSvc.Ingest(c.Request.Context(), payload, c.Request.Header)
	if err != nil {
		switch {
		case errors.Is(err, billingdomain.ErrSecretNotConfigured):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook secret not configured"})
		case errors.Is(err, billingdomain.ErrMissingSignature),
			errors.Is(err, billingdomain.ErrInvalidSignature):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		case errors.Is(err, billingdomain.ErrInvalidPayload),
			errors.Is(err, billingdomain.ErrInvalidEvent):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
