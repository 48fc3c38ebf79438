package dms

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time retrieval so business logic is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator abstracts unique ID generation so tests are deterministic.
type IDGenerator interface {
	New() string
}

// UUIDGenerator produces random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.New().String() }

// Sleeper injects the artificial delay served before every simulated-store
// operation, so degraded mode is visually distinguishable from real calls.
type Sleeper interface {
	Sleep(ctx context.Context) error
}

// LatencySleeper sleeps a uniformly distributed duration in [Min, Max].
type LatencySleeper struct {
	Min time.Duration
	Max time.Duration
}

// NewLatencySleeper returns the default simulated latency of 500-800ms.
func NewLatencySleeper() LatencySleeper {
	return LatencySleeper{Min: 500 * time.Millisecond, Max: 800 * time.Millisecond}
}

func (l LatencySleeper) Sleep(ctx context.Context) error {
	d := l.Min
	if l.Max > l.Min {
		d += time.Duration(rand.Int63n(int64(l.Max - l.Min + 1)))
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NopSleeper skips the delay entirely. Use in tests.
type NopSleeper struct{}

func (NopSleeper) Sleep(context.Context) error { return nil }
