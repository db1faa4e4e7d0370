// Package clock provides the port.Clock implementations: the wall clock for
// the service and a pinned clock for tests and offline CLI runs.
package clock

import (
	"time"

	"github.com/cashroute/cashroute/internal/domain/port"
)

// System reads the wall clock in UTC.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always reports the same instant.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time {
	return f.Instant
}

var (
	_ port.Clock = System{}
	_ port.Clock = Fixed{}
)
