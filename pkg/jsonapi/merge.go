package jsonapi

import (
	"reflect"
	"sort"

	"github.com/relario/recordsync/pkg/keymap"
	"github.com/relario/recordsync/pkg/record"
)

// Merger folds a response document back into the change history. It
// never mutates the original request, response or operation; it only
// produces new transforms for the caller to log and announce. The key
// map is consulted before emitting a binding, so merging an identical
// response twice produces no duplicate replaceKey operations.
type Merger struct {
	keys       keymap.Map
	keyName    string
	serializer *Serializer
}

// NewMerger creates a merger writing remote-assigned ids under keyName.
func NewMerger(keys keymap.Map, keyName string, serializer *Serializer) *Merger {
	return &Merger{keys: keys, keyName: keyName, serializer: serializer}
}

// Merge extracts server-assigned state from a response to the given
// operation and returns zero or more follow-up transforms, in order:
// first the primary-resource transform (replaceAttribute operations for
// authoritative recalculations, then a replaceKey for a newly assigned
// id), then one transform covering all side-loaded resources.
func (m *Merger) Merge(op record.Operation, doc *Document) ([]*record.Transform, error) {
	if doc == nil {
		return nil, nil
	}

	var out []*record.Transform

	primary, err := doc.PrimaryResource()
	if err != nil {
		return nil, err
	}
	if primary != nil {
		if t := m.mergePrimary(op, primary); t != nil {
			out = append(out, t)
		}
	}

	if t := m.mergeIncluded(doc.Included); t != nil {
		out = append(out, t)
	}
	return out, nil
}

func (m *Merger) mergePrimary(op record.Operation, primary *Resource) *record.Transform {
	target := op.Target()
	var ops []record.Operation

	// Authoritative server-side recalculation: fields that were sent and
	// came back different become replaceAttribute operations.
	if op.Kind == record.UpdateRecord || op.Kind == record.ReplaceAttribute {
		sent := sentAttributes(op)
		names := make([]string, 0, len(sent))
		for name := range sent {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			received, ok := primary.Attributes[name]
			if !ok {
				continue
			}
			if !reflect.DeepEqual(received, sent[name]) {
				ops = append(ops, record.NewReplaceAttribute(target, name, received))
			}
		}
	}

	// A newly assigned (or changed) id becomes a replaceKey binding,
	// skipped when the key map already holds it.
	if primary.ID != "" && !m.keys.Has(target.Type, m.keyName, target.ID, primary.ID) {
		ops = append(ops, record.NewReplaceKey(target, m.keyName, primary.ID))
		m.keys.Set(target.Type, m.keyName, target.ID, primary.ID)
	}

	if len(ops) == 0 {
		return nil
	}
	return record.NewTransform(ops...)
}

// mergeIncluded emits each side-loaded resource not already known
// locally as an updateRecord, all inside one transform per request,
// preserving included-array order.
func (m *Merger) mergeIncluded(included []Resource) *record.Transform {
	var ops []record.Operation
	for i := range included {
		res := &included[i]
		if res.ID != "" {
			if _, known := m.keys.IDFromKey(res.Type, m.keyName, res.ID); known {
				continue
			}
		}
		rec := m.serializer.Deserialize(res)
		if res.ID != "" {
			m.keys.Set(res.Type, m.keyName, rec.ID, res.ID)
		}
		ops = append(ops, record.NewUpdateRecord(rec))
	}
	if len(ops) == 0 {
		return nil
	}
	return record.NewTransform(ops...)
}

func sentAttributes(op record.Operation) map[string]interface{} {
	switch op.Kind {
	case record.UpdateRecord:
		if op.Record != nil {
			return op.Record.Attributes
		}
	case record.ReplaceAttribute:
		return map[string]interface{}{op.Attribute: op.Value}
	}
	return nil
}
