package logger

import (
	"go.uber.org/zap"
)

// ReqLogger routes the HTTP client library's internal logging through the
// global zap logger. It satisfies req.Logger.
type ReqLogger struct {
	prefix string
}

func NewReqLogger(prefix string) *ReqLogger {
	return &ReqLogger{prefix: prefix}
}

func (r *ReqLogger) Warnf(format string, args ...interface{}) {
	if Sugar != nil {
		Sugar.WithOptions(zap.AddCallerSkip(1)).Warnf(r.prefix+format, args...)
	}
}

func (r *ReqLogger) Errorf(format string, args ...interface{}) {
	if Sugar != nil {
		Sugar.WithOptions(zap.AddCallerSkip(1)).Errorf(r.prefix+format, args...)
	}
}

func (r *ReqLogger) Debugf(format string, args ...interface{}) {
	if Sugar != nil {
		Sugar.WithOptions(zap.AddCallerSkip(1)).Debugf(r.prefix+format, args...)
	}
}
