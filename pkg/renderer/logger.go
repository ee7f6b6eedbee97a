package renderer

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/df07/go-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to glog at INFO level
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	glog.InfoDepth(1, fmt.Sprintf(format, args...))
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// NopLogger discards all output
type NopLogger struct{}

func (NopLogger) Printf(format string, args ...interface{}) {}
