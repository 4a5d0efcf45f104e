package logger

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/housekeep/core/internal/infrastructure/config"
)

// Logger wraps zap.SugaredLogger to provide application-specific logging
type Logger struct {
	*zap.SugaredLogger
}

// New creates a new logger instance
func New(cfg config.LoggerConfig) (*Logger, error) {
	var zapConfig zap.Config

	if cfg.Format == "json" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	if cfg.Output == "file" && cfg.Filename != "" {
		zapConfig.OutputPaths = []string{cfg.Filename}
		zapConfig.ErrorOutputPaths = []string{cfg.Filename}
	} else {
		zapConfig.OutputPaths = []string{"stdout"}
		zapConfig.ErrorOutputPaths = []string{"stderr"}
	}

	zapLogger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return &Logger{
		SugaredLogger: zapLogger.Sugar(),
	}, nil
}

// NewNop returns a logger that discards everything
func NewNop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// WithFields adds structured fields to the logger
func (l *Logger) WithFields(fields ...interface{}) *Logger {
	return &Logger{
		SugaredLogger: l.SugaredLogger.With(fields...),
	}
}

// WithComponent adds a component field to the logger
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithFields("component", component)
}

// ForUser scopes entries to the user whose chores are being handled
func (l *Logger) ForUser(userID uuid.UUID) *Logger {
	return l.WithFields("user_id", userID.String())
}

// LogTaskEvent records a change to one of a user's tasks, e.g. "task.completed".
func (l *Logger) LogTaskEvent(event string, userID, taskID uuid.UUID, fields ...interface{}) {
	l.Infow("Task event", append([]interface{}{
		"event", event,
		"user_id", userID.String(),
		"task_id", taskID.String(),
	}, fields...)...)
}

func (l *Logger) LogSpaceEvent(event string, userID, spaceID uuid.UUID, fields ...interface{}) {
	l.Infow("Space event", append([]interface{}{
		"event", event,
		"user_id", userID.String(),
		"space_id", spaceID.String(),
	}, fields...)...)
}

// LogSecurityEvent warns about rejected credentials or throttled users.
// userID is left out when it is uuid.Nil.
func (l *Logger) LogSecurityEvent(event string, userID uuid.UUID, ip string, fields ...interface{}) {
	head := []interface{}{"security_event", event}
	if userID != uuid.Nil {
		head = append(head, "user_id", userID.String())
	}
	if ip != "" {
		head = append(head, "ip", ip)
	}
	l.Warnw("Security event", append(head, fields...)...)
}

// Close flushes any buffered log entries
func (l *Logger) Close() error {
	return l.SugaredLogger.Sync()
}
