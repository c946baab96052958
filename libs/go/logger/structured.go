package logger

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogComponent represents different system components for filtering
type LogComponent string

const (
	ComponentAPI        LogComponent = "api"
	ComponentRPC        LogComponent = "rpc"
	ComponentProbe      LogComponent = "probe"
	ComponentScanner    LogComponent = "scanner"
	ComponentIndexer    LogComponent = "indexer"
	ComponentStats      LogComponent = "stats"
	ComponentSession    LogComponent = "session"
	ComponentCache      LogComponent = "cache"
	ComponentExplorer   LogComponent = "explorer"
	ComponentSubgraph   LogComponent = "subgraph"
	ComponentMiddleware LogComponent = "middleware"
	ComponentCLI        LogComponent = "cli"
)

// LogContext holds structured context information for logs
type LogContext struct {
	Account       string
	SessionID     string
	Contract      string
	CorrelationID string
	Component     LogComponent
	Operation     string
	Duration      time.Duration
	Fields        map[string]interface{}
}

// StructuredLogger provides enhanced logging with structured context
type StructuredLogger struct {
	logger    *zap.Logger
	component LogComponent
	context   LogContext
}

// NewStructuredLogger creates a new structured logger for a specific component
func NewStructuredLogger(component LogComponent) *StructuredLogger {
	return &StructuredLogger{
		logger:    Log,
		component: component,
		context:   LogContext{Component: component, Fields: make(map[string]interface{})},
	}
}

// WithField adds a field to the log context
func (sl *StructuredLogger) WithField(key string, value interface{}) *StructuredLogger {
	newLogger := sl.clone()
	newLogger.context.Fields[key] = value
	return newLogger
}

// WithAccount adds the wallet address to the log context
func (sl *StructuredLogger) WithAccount(account string) *StructuredLogger {
	newLogger := sl.clone()
	newLogger.context.Account = account
	return newLogger
}

// WithSessionID adds the wallet session ID to the log context
func (sl *StructuredLogger) WithSessionID(sessionID string) *StructuredLogger {
	newLogger := sl.clone()
	newLogger.context.SessionID = sessionID
	return newLogger
}

// WithContract adds a contract address to the log context
func (sl *StructuredLogger) WithContract(contract string) *StructuredLogger {
	newLogger := sl.clone()
	newLogger.context.Contract = contract
	return newLogger
}

// WithCorrelationID adds correlation ID to the log context
func (sl *StructuredLogger) WithCorrelationID(correlationID string) *StructuredLogger {
	newLogger := sl.clone()
	newLogger.context.CorrelationID = correlationID
	return newLogger
}

// WithOperation adds operation name to the log context
func (sl *StructuredLogger) WithOperation(operation string) *StructuredLogger {
	newLogger := sl.clone()
	newLogger.context.Operation = operation
	return newLogger
}

// WithDuration adds duration to the log context
func (sl *StructuredLogger) WithDuration(duration time.Duration) *StructuredLogger {
	newLogger := sl.clone()
	newLogger.context.Duration = duration
	return newLogger
}

func (sl *StructuredLogger) clone() *StructuredLogger {
	newFields := make(map[string]interface{}, len(sl.context.Fields))
	for k, v := range sl.context.Fields {
		newFields[k] = v
	}

	ctx := sl.context
	ctx.Fields = newFields
	return &StructuredLogger{
		logger:    sl.logger,
		component: sl.component,
		context:   ctx,
	}
}

func (sl *StructuredLogger) buildFields() []zapcore.Field {
	fields := make([]zapcore.Field, 0, 6+len(sl.context.Fields))

	if sl.context.Component != "" {
		fields = append(fields, zap.String("component", string(sl.context.Component)))
	}
	if sl.context.Account != "" {
		fields = append(fields, zap.String("account", sl.context.Account))
	}
	if sl.context.SessionID != "" {
		fields = append(fields, zap.String("session_id", sl.context.SessionID))
	}
	if sl.context.Contract != "" {
		fields = append(fields, zap.String("contract", sl.context.Contract))
	}
	if sl.context.CorrelationID != "" {
		fields = append(fields, zap.String("correlation_id", sl.context.CorrelationID))
	}
	if sl.context.Operation != "" {
		fields = append(fields, zap.String("operation", sl.context.Operation))
	}
	if sl.context.Duration > 0 {
		fields = append(fields, zap.Duration("duration", sl.context.Duration))
	}

	for key, value := range sl.context.Fields {
		fields = append(fields, zap.Any(key, value))
	}

	return fields
}

// Debug logs a debug message with structured context
func (sl *StructuredLogger) Debug(msg string) {
	sl.logger.Debug(msg, sl.buildFields()...)
}

// Info logs an info message with structured context
func (sl *StructuredLogger) Info(msg string) {
	sl.logger.Info(msg, sl.buildFields()...)
}

// Warn logs a warning message with structured context
func (sl *StructuredLogger) Warn(msg string, err error) {
	fields := sl.buildFields()
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	sl.logger.Warn(msg, fields...)
}

// Error logs an error message with structured context
func (sl *StructuredLogger) Error(msg string, err error) {
	fields := sl.buildFields()
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	sl.logger.Error(msg, fields...)
}

// LogOperation logs the start and end of an operation with timing
func (sl *StructuredLogger) LogOperation(operation string, fn func() error) error {
	start := time.Now()
	opLogger := sl.WithOperation(operation)

	opLogger.Debug("Operation started")

	err := fn()
	finalLogger := opLogger.WithDuration(time.Since(start))

	if err != nil {
		finalLogger.Error("Operation failed", err)
	} else {
		finalLogger.Info("Operation completed")
	}

	return err
}

// LogProbeAttempt records one candidate of a contract probing waterfall.
// Failed candidates are expected and logged at debug.
func (sl *StructuredLogger) LogProbeAttempt(method, outcome string, err error) {
	l := sl.WithFields(map[string]interface{}{
		"method":  method,
		"outcome": outcome,
	})
	if err != nil {
		l.WithField("error", err.Error()).Debug("Probe candidate failed")
		return
	}
	l.Debug("Probe candidate answered")
}

// LogStatSource records which source produced (or failed to produce) a statistic.
func (sl *StructuredLogger) LogStatSource(metric, source string, err error) {
	l := sl.WithFields(map[string]interface{}{
		"metric": metric,
		"source": source,
	})
	if err != nil {
		l.Warn("Statistic source failed", err)
		return
	}
	l.Debug("Statistic resolved")
}

// WithFields adds multiple fields to the log context
func (sl *StructuredLogger) WithFields(fields map[string]interface{}) *StructuredLogger {
	newLogger := sl.clone()
	for k, v := range fields {
		newLogger.context.Fields[k] = v
	}
	return newLogger
}

// Timer helps measure operation duration
type Timer struct {
	start  time.Time
	logger *StructuredLogger
	name   string
}

// NewTimer creates a new timer for measuring operation duration
func (sl *StructuredLogger) NewTimer(operationName string) *Timer {
	return &Timer{
		start:  time.Now(),
		logger: sl,
		name:   operationName,
	}
}

// StopWithResult stops the timer and logs the result
func (t *Timer) StopWithResult(success bool, err error) {
	l := t.logger.WithOperation(t.name).WithDuration(time.Since(t.start)).WithField("success", success)

	if success {
		l.Debug(fmt.Sprintf("%s completed", t.name))
	} else {
		l.Warn(fmt.Sprintf("%s failed", t.name), err)
	}
}
