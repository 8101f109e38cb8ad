package utils

import "go.uber.org/zap"

// SugaredLogAdapter exposes a zap logger through the message plus key/value pair methods used by HTTP clients.
type SugaredLogAdapter struct {
	sugaredLogger *zap.SugaredLogger
}

// NewSugaredLogAdapter wraps logger. A nil logger discards every record.
func NewSugaredLogAdapter(logger *zap.Logger) *SugaredLogAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SugaredLogAdapter{sugaredLogger: logger.Sugar()}
}

// Debug logs at debug level.
func (adapter *SugaredLogAdapter) Debug(message string, keysAndValues ...any) {
	adapter.sugaredLogger.Debugw(message, keysAndValues...)
}

// Info logs at info level.
func (adapter *SugaredLogAdapter) Info(message string, keysAndValues ...any) {
	adapter.sugaredLogger.Infow(message, keysAndValues...)
}

// Warn logs at warn level.
func (adapter *SugaredLogAdapter) Warn(message string, keysAndValues ...any) {
	adapter.sugaredLogger.Warnw(message, keysAndValues...)
}

// Error logs at error level.
func (adapter *SugaredLogAdapter) Error(message string, keysAndValues ...any) {
	adapter.sugaredLogger.Errorw(message, keysAndValues...)
}
