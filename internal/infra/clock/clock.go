// Package clock provides the system implementation of the domain Clock.
package clock

import (
	"time"

	"credo/internal/domain/service"
)

type systemClock struct{}

// NewSystemClock returns a Clock backed by time.Now.
func NewSystemClock() service.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
