package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/invoicehub/backend/internal/interfaces/http/dto"
)

// BodyLimit caps the request body. Invoice payloads are a header and a
// handful of lines; anything larger is rejected before binding.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse("REQUEST_TOO_LARGE", "Request body exceeds the allowed size"))
			return
		}

		// Guard chunked requests that carry no Content-Length.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
