package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventLoginFailed          EventType = "login_failed"
	EventLoginSuccess         EventType = "login_success"
	EventRegisterConflict     EventType = "register_conflict"
	EventRateLimitTriggered   EventType = "rate_limit_triggered"
	EventUnauthorizedAccess   EventType = "unauthorized_access"
	EventDuplicateApplication EventType = "duplicate_application"
)

// Event represents a security-related event to be logged
type Event struct {
	Timestamp    time.Time              `json:"timestamp"`
	Service      string                 `json:"service"`
	Environment  string                 `json:"env"`
	Level        string                 `json:"level"`
	Event        EventType              `json:"event"`
	SubjectType  string                 `json:"subject_type,omitempty"`  // "email", "ip", "user_id"
	SubjectValue string                 `json:"subject_value,omitempty"` // Masked or hashed for PII
	IP           string                 `json:"ip,omitempty"`
	UserAgent    string                 `json:"user_agent,omitempty"`
	RequestID    string                 `json:"request_id,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// EventLogger provides structured logging for security events
type EventLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

var defaultLogger *EventLogger

// InitEventLogger initializes the security event logger with Zap
func InitEventLogger(serviceName, environment string) *EventLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"

	// stdout/stderr for container environments
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	el := &EventLogger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: environment,
	}

	defaultLogger = el
	return el
}

// DefaultLogger returns the default event logger instance
func DefaultLogger() *EventLogger {
	if defaultLogger == nil {
		return InitEventLogger("jobboard-backend", getEnvironment())
	}
	return defaultLogger
}

// Log logs a security event
func (el *EventLogger) Log(_ context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Service = el.serviceName
	event.Environment = el.environment

	level := zapcore.WarnLevel
	switch event.Event {
	case EventLoginSuccess:
		level = zapcore.InfoLevel
	case EventLoginFailed, EventRateLimitTriggered, EventRegisterConflict, EventDuplicateApplication:
		level = zapcore.WarnLevel
	case EventUnauthorizedAccess:
		level = zapcore.ErrorLevel
	}
	event.Level = level.String()

	fields := []zap.Field{
		zap.String("service", event.Service),
		zap.String("env", event.Environment),
		zap.String("event", string(event.Event)),
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	el.zapLogger.Log(level, string(event.Event), fields...)
}

// LogLoginFailed logs a failed login attempt
func (el *EventLogger) LogLoginFailed(ctx context.Context, email, ip, userAgent, requestID, reason string) {
	el.Log(ctx, Event{
		Event:        EventLoginFailed,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]interface{}{"reason": reason},
	})
}

// LogLoginSuccess logs a successful login
func (el *EventLogger) LogLoginSuccess(ctx context.Context, email, ip, requestID string) {
	el.Log(ctx, Event{
		Event:        EventLoginSuccess,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		IP:           ip,
		RequestID:    requestID,
	})
}

// LogUnauthorizedAccess logs a role or ownership violation
func (el *EventLogger) LogUnauthorizedAccess(ctx context.Context, userID, ip, requestID, endpoint string) {
	el.Log(ctx, Event{
		Event:        EventUnauthorizedAccess,
		SubjectType:  "user_id",
		SubjectValue: HashValue(userID),
		IP:           ip,
		RequestID:    requestID,
		Details:      map[string]interface{}{"endpoint": endpoint},
	})
}

// LogRateLimitTriggered logs when rate limiting is triggered
func (el *EventLogger) LogRateLimitTriggered(ctx context.Context, ip, userAgent, requestID, endpoint string) {
	el.Log(ctx, Event{
		Event:        EventRateLimitTriggered,
		SubjectType:  "ip",
		SubjectValue: ip,
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]interface{}{"endpoint": endpoint},
	})
}

// Sync flushes any buffered log entries
func (el *EventLogger) Sync() error {
	return el.zapLogger.Sync()
}

// --- Helper Functions ---

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	if len(email) < 3 {
		return "***"
	}
	atIndex := -1
	for i, c := range email {
		if c == '@' {
			atIndex = i
			break
		}
	}
	if atIndex <= 1 {
		return "***" + email[1:]
	}
	return string(email[0]) + "***" + email[atIndex:]
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

// getEnvironment determines the current environment
func getEnvironment() string {
	env := os.Getenv("GIN_MODE")
	if env == "release" {
		return "production"
	}
	return "development"
}
