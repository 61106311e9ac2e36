// Package recovery centralizes the retry and degradation policy applied
// around every external capability call. Transient failures get one retry,
// quota and auth failures trip a per-capability gate for the rest of the run,
// and everything non-structural degrades to a warning instead of an error.
package recovery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Kind classifies a capability failure.
type Kind string

const (
	KindTransient  Kind = "transient"
	KindQuota      Kind = "quota"
	KindAuth       Kind = "auth"
	KindValidation Kind = "validation"
	KindStructural Kind = "structural"
)

// CapabilityError wraps a failure of a named external capability with its
// classification.
type CapabilityError struct {
	Capability string
	Kind       Kind
	Err        error
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Capability, e.Kind, e.Err)
}

func (e *CapabilityError) Unwrap() error { return e.Err }

// NewError builds a CapabilityError.
func NewError(capability string, kind Kind, err error) *CapabilityError {
	return &CapabilityError{Capability: capability, Kind: kind, Err: err}
}

// KindOf returns the classification of err. Unclassified errors count as
// transient so they get the retry-then-degrade treatment.
func KindOf(err error) Kind {
	var ce *CapabilityError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTransient
	}
	return KindTransient
}

// Terminal reports whether err should disable its capability for the rest of
// the run.
func Terminal(err error) bool {
	k := KindOf(err)
	return k == KindQuota || k == KindAuth
}

// Policy is the retry policy for one external call.
type Policy struct {
	Retries int
	Backoff time.Duration
}

// DefaultPolicy retries once after a short fixed backoff.
func DefaultPolicy() Policy {
	return Policy{Retries: 1, Backoff: 500 * time.Millisecond}
}

// Do runs fn under the policy. Only transient failures are retried; quota,
// auth, validation, and structural errors return immediately.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt <= p.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.Backoff):
			}
		}
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if KindOf(lastErr) != KindTransient {
			return lastErr
		}
	}
	return lastErr
}

// Gate tracks capabilities disabled by terminal failures. Once tripped for a
// capability, calls through the gate short-circuit without contacting it.
type Gate struct {
	mu      sync.RWMutex
	tripped map[string]Kind
}

func NewGate() *Gate {
	return &Gate{tripped: make(map[string]Kind)}
}

// Open reports whether the capability is still usable.
func (g *Gate) Open(capability string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, down := g.tripped[capability]
	return !down
}

// Trip disables the capability for the remainder of the run.
func (g *Gate) Trip(capability string, kind Kind) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, down := g.tripped[capability]; !down {
		g.tripped[capability] = kind
	}
}

// RecordFailure trips the gate when err is terminal for its capability.
func (g *Gate) RecordFailure(capability string, err error) {
	if Terminal(err) {
		g.Trip(capability, KindOf(err))
	}
}

// Warning is one structured, non-fatal failure attached to a run.
type Warning struct {
	Section    string
	Capability string
	Kind       Kind
	Message    string
}

func (w Warning) String() string {
	if w.Section == "" {
		return fmt.Sprintf("[%s/%s] %s", w.Capability, w.Kind, w.Message)
	}
	return fmt.Sprintf("[%s/%s] section %q: %s", w.Capability, w.Kind, w.Section, w.Message)
}

// Recorder collects warnings across a run. Safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	warnings []Warning
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Add records a warning.
func (r *Recorder) Add(section, capability string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, Warning{
		Section:    section,
		Capability: capability,
		Kind:       KindOf(err),
		Message:    err.Error(),
	})
}

// Warnings returns a copy of everything recorded so far.
func (r *Recorder) Warnings() []Warning {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Warning, len(r.warnings))
	copy(out, r.warnings)
	return out
}
