package chat

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrTimeout means a provider call exceeded its deadline. For user
	// messaging it behaves like a transport failure, but it stays
	// distinguishable for logging.
	ErrTimeout = errors.New("provider request timed out")

	// ErrPermissionDenied means the actor lacked the privilege required for
	// a configuration action.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidLevel means a configuration action referenced an undefined
	// tone level. No state is mutated when this is returned.
	ErrInvalidLevel = errors.New("invalid tone level")
)

// BlockedError means the provider's content policy rejected the request.
// Recoverable by rephrasing, so the reason code is surfaced to the user.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("content blocked: %s", e.Reason)
}

// TransportError wraps network or provider errors unrelated to content.
// The core does not retry; the user may resend manually.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("provider transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// classify maps a raw provider error onto the typed taxonomy. Blocked errors
// and timeouts pass through; everything else becomes a TransportError.
func classify(err error) error {
	var blocked *BlockedError
	if errors.As(err, &blocked) {
		return blocked
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return &TransportError{Err: err}
}
