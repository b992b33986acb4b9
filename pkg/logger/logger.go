package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with the ticketing-specific helpers used across handlers and services.
type Logger struct {
	*slog.Logger
}

// New creates a logger writing to stdout, using LOG_LEVEL from the environment.
func New() *Logger {
	return NewWithWriter(os.Stdout, os.Getenv("LOG_LEVEL"))
}

// NewWithWriter creates a logger for the given writer and level name.
// Text output is used in gin debug mode, JSON everywhere else.
func NewWithWriter(w io.Writer, level string) *Logger {
	lvl := getLogLevel(level)
	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}

	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID adds request ID to logger context
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("request_id", requestID))}
}

// WithSessionID scopes the logger to one purchase session
func (l *Logger) WithSessionID(sessionID string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("session_id", sessionID))}
}

func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("error", err.Error()))}
}

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("request_id", c.GetString("request_id")),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogHTTPError logs an HTTP error
func (l *Logger) LogHTTPError(c *gin.Context, err error, statusCode int) {
	l.Logger.ErrorContext(c.Request.Context(),
		"HTTP Error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
		slog.String("ip", c.ClientIP()),
	)
}

// Purchase flow logging

func (l *Logger) LogSessionOpened(ctx context.Context, sessionID, eventID, state string) {
	l.Logger.InfoContext(ctx,
		"Purchase Session Opened",
		slog.String("session_id", sessionID),
		slog.String("event_id", eventID),
		slog.String("state", state),
	)
}

func (l *Logger) LogPaymentInitiated(ctx context.Context, sessionID, reference, gateway string, amountMinor int64) {
	l.Logger.InfoContext(ctx,
		"Payment Initiated",
		slog.String("session_id", sessionID),
		slog.String("reference", reference),
		slog.String("gateway", gateway),
		slog.Int64("amount_minor", amountMinor),
	)
}

func (l *Logger) LogPaymentResolved(ctx context.Context, sessionID, reference, outcome, reason string) {
	l.Logger.InfoContext(ctx,
		"Payment Resolved",
		slog.String("session_id", sessionID),
		slog.String("reference", reference),
		slog.String("outcome", outcome),
		slog.String("reason", reason),
	)
}

func (l *Logger) LogReceiptStored(ctx context.Context, reference, eventID string, quantity int) {
	l.Logger.InfoContext(ctx,
		"Receipt Stored",
		slog.String("reference", reference),
		slog.String("event_id", eventID),
		slog.Int("quantity", quantity),
	)
}

func (l *Logger) LogAppointmentRequested(ctx context.Context, appointmentID, eventType string) {
	l.Logger.InfoContext(ctx,
		"Appointment Requested",
		slog.String("appointment_id", appointmentID),
		slog.String("event_type", eventType),
	)
}

// LogRateLimitExceeded logs rate limit exceeded
func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)+1)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
