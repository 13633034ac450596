package middleware

import (
	"time"

	"github.com/annel0/shapebuilder/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

const (
	// TraceIDKey - ключ trace-ID в gin.Context
	TraceIDKey = "trace_id"
	// RequestIDHeader - заголовок ответа с trace-ID
	RequestIDHeader = "X-Request-ID"
)

// RequestLogger снабжает каждый HTTP-запрос trace-ID и пишет краткие логи.
type RequestLogger struct {
	logger *logging.Logger
}

// NewRequestLogger создаёт middleware. logger == nil означает глобальный logging.
func NewRequestLogger(logger *logging.Logger) *RequestLogger {
	return &RequestLogger{logger: logger}
}

func (rl *RequestLogger) infof(format string, args ...interface{}) {
	if rl.logger != nil {
		rl.logger.Info(format, args...)
		return
	}
	logging.Info(format, args...)
}

func (rl *RequestLogger) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// X-Request-ID клиента, затем trace-id из OpenTelemetry, иначе новый.
		span := trace.SpanFromContext(c.Request.Context())
		var traceID string
		switch {
		case c.GetHeader(RequestIDHeader) != "":
			traceID = c.GetHeader(RequestIDHeader)
		case span.SpanContext().IsValid():
			traceID = span.SpanContext().TraceID().String()
		default:
			traceID = uuid.NewString()
		}
		c.Set(TraceIDKey, traceID)
		c.Header(RequestIDHeader, traceID)

		start := time.Now()
		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		rl.infof("[HTTP] ▶ %s %s ip=%s trace=%s", method, path, c.ClientIP(), traceID)

		c.Next()

		rl.infof("[HTTP] ◀ %s %s %d %s trace=%s", method, path, c.Writer.Status(), time.Since(start), traceID)
	}
}
