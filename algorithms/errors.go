package algorithms

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds     = errors.New("point is out of bounds")
	ErrBlockedEndpoint = errors.New("point lies within an obstacle")
	ErrNoPathFound     = errors.New("cannot find a path to target")
	ErrCanceled        = errors.New("path search canceled")
)

// EndpointError reports which endpoint of a request was rejected.
// It unwraps to ErrOutOfBounds or ErrBlockedEndpoint.
type EndpointError struct {
	Role  string // "start" or "target"
	Point Point
	Err   error
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("%s %v: %v", e.Role, e.Point, e.Err)
}

func (e *EndpointError) Unwrap() error { return e.Err }
