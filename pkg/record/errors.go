package record

import "errors"

// Operation validation error definitions
var (
	ErrUnknownOperation    = errors.New("unknown operation kind")
	ErrMissingRecord       = errors.New("operation requires a record payload")
	ErrMissingIdentity     = errors.New("operation requires a record identity")
	ErrMissingAttribute    = errors.New("operation requires an attribute name")
	ErrMissingKey          = errors.New("operation requires a key name")
	ErrMissingRelationship = errors.New("operation requires a relationship name")
	ErrEmptyTransform      = errors.New("transform carries no operations")
)
