package renderer

import (
	"fmt"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// discardLogger drops everything; used when no logger is supplied
type discardLogger struct{}

func (discardLogger) Printf(string, ...interface{}) {}
