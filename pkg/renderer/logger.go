package renderer

import (
	"fmt"
	"io"
	"log"

	"github.com/df07/go-realtime-raytracer/pkg/core"
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

// NewDiscardLogger returns a logger that drops every message
func NewDiscardLogger() core.Logger {
	return log.New(io.Discard, "", 0)
}
