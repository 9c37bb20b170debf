package jsonapi

import (
	"github.com/relario/recordsync/pkg/record"
)

// Planner decides which operations of a transform require requests and
// validates the count against the configured ceiling. Planning is
// synchronous and has no side effects.
//
// Requests preserve the transform's operation order. An operation that
// references a record whose primary id is pending (assigned by a create
// request earlier in the same transform) is not reordered: the id is
// resolved at execution time, because translation consults the key map
// after the create response has been merged.
type Planner struct {
	maxRequests int
}

// NewPlanner creates a planner. maxRequests caps the requests one
// transform may produce; zero means unbounded.
func NewPlanner(maxRequests int) *Planner {
	return &Planner{maxRequests: maxRequests}
}

// Plan returns the ordered operations of the transform that translate to
// requests. limit overrides the planner's ceiling when positive. When the
// count exceeds the effective ceiling, planning fails with
// TransformNotAllowedError and no requests are issued.
func (p *Planner) Plan(t *record.Transform, limit int) ([]record.Operation, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = p.maxRequests
	}

	planned := make([]record.Operation, 0, len(t.Operations))
	for _, op := range t.Operations {
		// replaceKey reflects state already established by a prior
		// response; it never goes over the wire.
		if op.Kind == record.ReplaceKey {
			continue
		}
		planned = append(planned, op)
	}

	if limit > 0 && len(planned) > limit {
		return nil, &TransformNotAllowedError{
			TransformID: t.ID,
			Planned:     len(planned),
			Limit:       limit,
		}
	}
	return planned, nil
}
