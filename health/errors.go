package health

import "errors"

// Sentinel errors for checker and aggregator failures.
var (
	// ErrCheckFailed is carried by an unhealthy Result when the checked
	// collaborator crossed a critical threshold, e.g. the cache store at
	// capacity.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout is carried by a Result when the check did not finish
	// within the aggregator's deadline.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrCheckerNotFound is returned by Aggregator.Check for an unregistered
	// name.
	ErrCheckerNotFound = errors.New("health: checker not found")
)
