package middleware

import (
	"compress/gzip"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// CompressionMiddleware encodes responses with brotli or gzip when the
// client advertises support. Worth the CPU on 2G-class links, where
// every byte written is latency for the user.
func CompressionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// WebSocket upgrades must see the raw connection.
		if strings.EqualFold(c.GetHeader("Connection"), "upgrade") ||
			strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
			c.Next()
			return
		}

		accept := c.GetHeader("Accept-Encoding")

		var (
			encoder  io.WriteCloser
			encoding string
		)
		switch {
		case strings.Contains(accept, "br"):
			encoding = "br"
			encoder = brotli.NewWriterLevel(c.Writer, brotli.DefaultCompression)
		case strings.Contains(accept, "gzip"):
			encoding = "gzip"
			encoder = gzip.NewWriter(c.Writer)
		default:
			c.Next()
			return
		}

		c.Header("Content-Encoding", encoding)
		c.Header("Vary", "Accept-Encoding")

		cw := &compressedWriter{ResponseWriter: c.Writer, encoder: encoder}
		c.Writer = cw

		defer func() {
			encoder.Close()
			c.Header("Content-Length", "")
		}()

		c.Next()
	}
}

type compressedWriter struct {
	gin.ResponseWriter
	encoder io.Writer
}

func (w *compressedWriter) Write(data []byte) (int, error) {
	return w.encoder.Write(data)
}

func (w *compressedWriter) WriteString(s string) (int, error) {
	return w.encoder.Write([]byte(s))
}
