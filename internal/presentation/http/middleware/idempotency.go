package middleware

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medibill/billing-api/pkg/kvstore"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Store kvstore.Store
}

// cachedResponse is the stored record for a completed request.
type cachedResponse struct {
	Code int    `json:"code"`
	Body string `json:"body"`
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency middleware prevents duplicate requests using idempotency keys.
// Requests without the header proceed normally.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only apply to POST, PUT, PATCH methods
		if c.Request.Method != "POST" && c.Request.Method != "PUT" && c.Request.Method != "PATCH" {
			c.Next()
			return
		}

		// Get idempotency key from header
		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			// No idempotency key provided, proceed normally
			c.Next()
			return
		}

		storeKey := "idem:" + c.Request.Method + " " + c.FullPath() + ":" + idempotencyKey

		// Check if this key was already processed
		value, found, err := config.Store.Get(c.Request.Context(), storeKey)
		if err == nil && found {
			var cached cachedResponse
			if err := json.Unmarshal(value, &cached); err == nil {
				c.Header("X-Idempotency-Replayed", "true")
				c.Data(cached.Code, "application/json", []byte(cached.Body))
				c.Abort()
				return
			}
		}

		// Capture the response
		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		// Process the request
		c.Next()

		// Only store successful responses (2xx status codes)
		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			record, err := json.Marshal(cachedResponse{
				Code: c.Writer.Status(),
				Body: blw.body.String(),
			})
			if err != nil {
				return
			}
			_ = config.Store.Set(c.Request.Context(), storeKey, record, IdempotencyKeyTTL)
		}
	}
}
