package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Options tunes the process-local adapters. The zero value means no simulated
// latency, random UUIDs and the wall clock.
type Options struct {
	// Latency is the artificial delay applied before every operation.
	Latency time.Duration
	// NewID generates identifiers for created records.
	NewID func() string
	// Now returns the current time for adapter-assigned timestamps.
	Now func() time.Time
}

// Wait blocks for the configured latency or until ctx is done.
func (o Options) Wait(ctx context.Context) error {
	if o.Latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(o.Latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ID returns a fresh identifier.
func (o Options) ID() string {
	if o.NewID != nil {
		return o.NewID()
	}
	return uuid.NewString()
}

// Time returns the current time in UTC.
func (o Options) Time() time.Time {
	if o.Now != nil {
		return o.Now().UTC()
	}
	return time.Now().UTC()
}
