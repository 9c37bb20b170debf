package record

import "github.com/google/uuid"

// Transform is an ordered, atomically-planned group of operations
// representing one logical change. It is immutable once constructed:
// follow-up state synthesized from server responses is expressed as new
// transforms with fresh ids, never by editing an existing one.
type Transform struct {
	ID         string      `json:"id"`
	Operations []Operation `json:"operations"`
}

// NewTransform groups operations under a fresh transform id.
func NewTransform(operations ...Operation) *Transform {
	ops := make([]Operation, len(operations))
	copy(ops, operations)
	return &Transform{
		ID:         uuid.NewString(),
		Operations: ops,
	}
}

// Validate checks the transform and each of its operations.
func (t *Transform) Validate() error {
	if len(t.Operations) == 0 {
		return ErrEmptyTransform
	}
	for i := range t.Operations {
		if err := t.Operations[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
