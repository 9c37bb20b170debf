package jsonapi

import (
	"errors"
	"fmt"
	"time"
)

// Translation error definitions
var (
	ErrUnresolvedIdentity = errors.New("record has neither a primary id nor a resolvable secondary key")
)

// TransformNotAllowedError is raised at planning time when a transform
// would require more requests than the configured ceiling. No network
// activity has occurred when it is returned.
type TransformNotAllowedError struct {
	TransformID string
	Planned     int
	Limit       int
}

func (e *TransformNotAllowedError) Error() string {
	return fmt.Sprintf("transform %s not allowed: %d requests planned, limit is %d", e.TransformID, e.Planned, e.Limit)
}

// NetworkError is a transport rejection or a timeout. Description is
// either the timeout sentence or the transport failure's own message.
type NetworkError struct {
	Description string
}

func (e *NetworkError) Error() string {
	return e.Description
}

// NewTimeoutError builds the network error for a request that did not
// resolve before its deadline.
func NewTimeoutError(timeout time.Duration) *NetworkError {
	return &NetworkError{
		Description: fmt.Sprintf("No fetch response within %dms.", timeout.Milliseconds()),
	}
}

// ClientError is an HTTP 4xx response. Description is the HTTP status
// text; Data holds the parsed error body when one was present.
type ClientError struct {
	Status      int
	Description string
	Data        *Document
}

func (e *ClientError) Error() string {
	return e.Description
}

// ServerError is an HTTP 5xx response, same shape as ClientError.
type ServerError struct {
	Status      int
	Description string
	Data        *Document
}

func (e *ServerError) Error() string {
	return e.Description
}
