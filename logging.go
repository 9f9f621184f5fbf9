package gamecrm

import (
	"github.com/icco/gutil/logging"
	"go.uber.org/zap"
)

// Service is the name of this service.
const Service = "gamecrm"

// NewLogger returns the service logger. It panics if zap cannot be built.
func NewLogger() *zap.SugaredLogger {
	return logging.Must(logging.NewLogger(Service))
}
