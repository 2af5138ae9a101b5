package adapter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// AdapterError carries provider failure metadata. The orchestrator never
// retries model calls; it logs the transience verdict so operators can
// tell a flaky fallback from a hard failure.
type AdapterError struct {
	Status    int // HTTP status from the provider, 0 for transport failures
	Temporary bool
	Err       error
}

func (e *AdapterError) Error() string {
	switch {
	case e == nil:
		return "model adapter error"
	case e.Err != nil && e.Status > 0:
		return fmt.Sprintf("model adapter error (status %d): %v", e.Status, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	default:
		return fmt.Sprintf("model adapter error (status %d)", e.Status)
	}
}

func (e *AdapterError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsTransient reports whether a model call failure could succeed on a
// retry. Cancellation is not transient: the caller asked to stop.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var ae *AdapterError
	if !errors.As(err, &ae) {
		return false
	}
	if ae.Temporary {
		return true
	}
	return ae.Status == http.StatusTooManyRequests || (ae.Status >= 500 && ae.Status <= 599)
}
