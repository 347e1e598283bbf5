package dispatchapi

import (
	"errors"
	"fmt"
)

// ErrInvalidLimit is returned before any request when a row limit is not
// positive.
var ErrInvalidLimit = errors.New("dispatchapi: limit must be positive")

// GatewayErrorKind classifies gateway failures.
type GatewayErrorKind string

const (
	KindTransport GatewayErrorKind = "transport"
	KindStatus    GatewayErrorKind = "status"
	KindDecode    GatewayErrorKind = "decode"
)

// GatewayError describes a failed backend call.
type GatewayError struct {
	Kind   GatewayErrorKind
	Path   string
	Status int
	Body   string
	Err    error
}

func (e *GatewayError) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Body != "" {
			return fmt.Sprintf("dispatchapi: GET %s: status %d: %s", e.Path, e.Status, e.Body)
		}
		return fmt.Sprintf("dispatchapi: GET %s: status %d", e.Path, e.Status)
	default:
		return fmt.Sprintf("dispatchapi: GET %s: %s: %v", e.Path, e.Kind, e.Err)
	}
}

func (e *GatewayError) Unwrap() error { return e.Err }

// KindOf reports the gateway error kind carried by err, if any.
func KindOf(err error) (GatewayErrorKind, bool) {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Kind, true
	}
	return "", false
}
