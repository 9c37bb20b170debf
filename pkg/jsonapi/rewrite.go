package jsonapi

import (
	"github.com/pquerna/ffjson/ffjson"
	"github.com/qntfy/kazaam/v4"
	"github.com/rs/zerolog/log"

	"github.com/relario/recordsync/pkg/config"
)

// Rewriter reshapes outbound request bodies with kazaam operations, for
// servers whose envelopes deviate from stock JSON:API.
type Rewriter struct {
	operations []config.RewriteOperation
	k          *kazaam.Kazaam
}

// NewRewriter creates a rewriter with no operations registered.
func NewRewriter() *Rewriter {
	return &Rewriter{
		operations: make([]config.RewriteOperation, 0),
	}
}

// RegisterOperation appends a rewrite operation; operations apply in
// registration order.
func (r *Rewriter) RegisterOperation(op config.RewriteOperation) {
	r.operations = append(r.operations, op)
}

// Initialize compiles the registered operations into a kazaam spec.
func (r *Rewriter) Initialize() error {
	spec, err := ffjson.Marshal(r.operations)
	if err != nil {
		return err
	}
	r.k, err = kazaam.NewKazaam(string(spec))
	return err
}

// Rewrite applies the compiled spec to a body. On failure the body is
// passed through unchanged.
func (r *Rewriter) Rewrite(data []byte) []byte {
	if r.k == nil {
		return data
	}
	out, err := r.k.Transform(data)
	if err != nil {
		log.Error().Err(err).Msg("failed to rewrite request body")
		return data
	}
	return out
}
