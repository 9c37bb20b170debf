package jsonapi

import (
	"github.com/relario/recordsync/pkg/keymap"
	"github.com/relario/recordsync/pkg/record"
)

// Serializer maps between local records and wire resources. It is purely
// structural: it consults the key map to resolve identifiers but never
// writes to it and has no side effects on any store.
type Serializer struct {
	keys    keymap.Map
	keyName string
}

// NewSerializer creates a serializer resolving remote ids through the
// named secondary key.
func NewSerializer(keys keymap.Map, keyName string) *Serializer {
	return &Serializer{keys: keys, keyName: keyName}
}

// WireID resolves the id a record is known by on the remote side: the
// record's own secondary key, a key-map binding for its local id, or the
// local id itself. Empty when the record has not been assigned one.
func (s *Serializer) WireID(identity record.RecordIdentity, keys map[string]string) string {
	if keys != nil {
		if v, ok := keys[s.keyName]; ok && v != "" {
			return v
		}
	}
	if identity.ID != "" {
		if v, ok := s.keys.ValueFromID(identity.Type, s.keyName, identity.ID); ok {
			return v
		}
	}
	return identity.ID
}

// WireIdentifier resolves an identity into a wire identifier.
func (s *Serializer) WireIdentifier(identity record.RecordIdentity) ResourceIdentifier {
	return ResourceIdentifier{
		Type: identity.Type,
		ID:   s.WireID(identity, nil),
	}
}

// Serialize renders a record as a wire resource. The id is omitted when
// the record has no resolvable id (the server-assigned-id case); type is
// always included. Relationship linkage preserves the supplied order.
func (s *Serializer) Serialize(rec *record.Record) *Resource {
	res := &Resource{
		Type: rec.Type,
		ID:   s.WireID(rec.Identity(), rec.Keys),
	}
	if len(rec.Attributes) > 0 {
		res.Attributes = make(map[string]interface{}, len(rec.Attributes))
		for k, v := range rec.Attributes {
			res.Attributes[k] = v
		}
	}
	if len(rec.Relationships) > 0 {
		res.Relationships = make(map[string]Relationship, len(rec.Relationships))
		for name, data := range rec.Relationships {
			res.Relationships[name] = s.serializeLinkage(data)
		}
	}
	return res
}

func (s *Serializer) serializeLinkage(data record.RelationshipData) Relationship {
	if data.HasMany {
		many := make([]ResourceIdentifier, 0, len(data.Records))
		for _, identity := range data.Records {
			many = append(many, s.WireIdentifier(identity))
		}
		return Relationship{HasMany: true, Many: many}
	}
	if len(data.Records) == 0 {
		return Relationship{}
	}
	one := s.WireIdentifier(data.Records[0])
	return Relationship{One: &one}
}

// Deserialize maps a wire resource back to a record. The wire id is
// resolved through the key map: when a binding exists the record keeps
// its local id, otherwise the wire id is adopted. Only the supplied
// fields appear on the result; the caller decides what is authoritative.
func (s *Serializer) Deserialize(res *Resource) *record.Record {
	rec := &record.Record{
		Type: res.Type,
		ID:   s.localID(res.Type, res.ID),
	}
	if res.ID != "" {
		rec.Keys = map[string]string{s.keyName: res.ID}
	}
	if len(res.Attributes) > 0 {
		rec.Attributes = make(map[string]interface{}, len(res.Attributes))
		for k, v := range res.Attributes {
			rec.Attributes[k] = v
		}
	}
	if len(res.Relationships) > 0 {
		rec.Relationships = make(map[string]record.RelationshipData, len(res.Relationships))
		for name, rel := range res.Relationships {
			rec.Relationships[name] = s.deserializeLinkage(rel)
		}
	}
	return rec
}

func (s *Serializer) deserializeLinkage(rel Relationship) record.RelationshipData {
	if rel.HasMany {
		records := make([]record.RecordIdentity, 0, len(rel.Many))
		for _, identifier := range rel.Many {
			records = append(records, record.RecordIdentity{
				Type: identifier.Type,
				ID:   s.localID(identifier.Type, identifier.ID),
			})
		}
		return record.RelationshipData{HasMany: true, Records: records}
	}
	if rel.One == nil {
		return record.RelationshipData{}
	}
	return record.RelationshipData{Records: []record.RecordIdentity{{
		Type: rel.One.Type,
		ID:   s.localID(rel.One.Type, rel.One.ID),
	}}}
}

func (s *Serializer) localID(recordType, wireID string) string {
	if wireID == "" {
		return ""
	}
	if id, ok := s.keys.IDFromKey(recordType, s.keyName, wireID); ok {
		return id
	}
	return wireID
}
