package health

import (
	"context"
	"time"
)

// Status is the reported health of one resolver collaborator, such as the
// cache store or the backing source.
type Status int

const (
	// StatusHealthy: the collaborator is serving lookups normally.
	StatusHealthy Status = iota
	// StatusDegraded: lookups still succeed but quality is reduced, e.g. a
	// cache dominated by expired entries.
	StatusDegraded
	// StatusUnhealthy: the collaborator cannot serve lookups.
	StatusUnhealthy
)

// String returns the status as a lowercase word.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Result is the outcome of checking one collaborator.
type Result struct {
	// Status is the health status.
	Status Status

	// Message is a short human-readable summary, e.g. "cache fill normal: 4.0%".
	Message string

	// Details carries check-specific metadata, such as entry counts.
	Details map[string]any

	// Duration is how long the check took.
	Duration time.Duration

	// Timestamp is when the check ran.
	Timestamp time.Time

	// Error is set when the check itself failed.
	Error error
}

// Healthy builds a healthy result.
func Healthy(message string) Result {
	return Result{
		Status:    StatusHealthy,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Degraded builds a degraded result.
func Degraded(message string) Result {
	return Result{
		Status:    StatusDegraded,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Unhealthy builds an unhealthy result carrying the causing error.
func Unhealthy(message string, err error) Result {
	return Result{
		Status:    StatusUnhealthy,
		Message:   message,
		Error:     err,
		Timestamp: time.Now(),
	}
}

// WithDetails attaches metadata to a result.
func (r Result) WithDetails(details map[string]any) Result {
	r.Details = details
	return r
}

// WithDuration records how long the check took.
func (r Result) WithDuration(d time.Duration) Result {
	r.Duration = d
	return r
}

// Checker reports the health of one collaborator. Names identify the
// collaborator in aggregated output, e.g. "cache-store" or "backing-source".
type Checker interface {
	// Name identifies this checker.
	Name() string

	// Check runs the health check. It must honor ctx cancellation.
	Check(ctx context.Context) Result
}

// CheckerFunc adapts a plain function into a Checker, typically a probe
// against the backing source.
type CheckerFunc struct {
	name string
	fn   func(context.Context) Result
}

// NewCheckerFunc wraps fn as a named Checker.
func NewCheckerFunc(name string, fn func(context.Context) Result) *CheckerFunc {
	return &CheckerFunc{name: name, fn: fn}
}

// Name identifies this checker.
func (f *CheckerFunc) Name() string {
	return f.name
}

// Check runs the wrapped function.
func (f *CheckerFunc) Check(ctx context.Context) Result {
	return f.fn(ctx)
}
