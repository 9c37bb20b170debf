package query

import "errors"

// Query builder error definitions
var (
	ErrInvalidSortOrder     = errors.New("sort order must be ascending or descending")
	ErrInvalidSortSpecifier = errors.New("invalid sort specifier")
	ErrUnknownExtension     = errors.New("unknown query extension")
)
