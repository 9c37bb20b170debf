package record

// RecordIdentity identifies a record by its type and primary id.
// A record created locally before the remote side has assigned an id
// may carry an empty ID; such records are addressed through their
// secondary keys until a binding is merged back.
type RecordIdentity struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
}

// Record is the local representation of a resource.
// Identity is (Type, ID); Keys hold secondary identifiers (typically the
// id assigned by the remote system) resolved through an external key map.
type Record struct {
	Type          string                      `json:"type"`
	ID            string                      `json:"id,omitempty"`
	Keys          map[string]string           `json:"keys,omitempty"`
	Attributes    map[string]interface{}      `json:"attributes,omitempty"`
	Relationships map[string]RelationshipData `json:"relationships,omitempty"`
}

// RelationshipData holds the linkage of a single named relationship.
// HasMany distinguishes a to-many linkage (Records, order preserved)
// from a to-one linkage (first element of Records, or cleared when empty).
type RelationshipData struct {
	HasMany bool             `json:"has_many"`
	Records []RecordIdentity `json:"records,omitempty"`
}

// Identity returns the record's identity.
func (r *Record) Identity() RecordIdentity {
	return RecordIdentity{Type: r.Type, ID: r.ID}
}

// Key returns the named secondary key value, if present.
func (r *Record) Key(name string) (string, bool) {
	if r.Keys == nil {
		return "", false
	}
	v, ok := r.Keys[name]
	return v, ok
}

// Clone returns a deep copy of the record. Operations and transforms are
// treated as immutable once constructed, so anything that needs to derive
// a modified record works on a clone.
func (r *Record) Clone() *Record {
	out := &Record{Type: r.Type, ID: r.ID}
	if r.Keys != nil {
		out.Keys = make(map[string]string, len(r.Keys))
		for k, v := range r.Keys {
			out.Keys[k] = v
		}
	}
	if r.Attributes != nil {
		out.Attributes = make(map[string]interface{}, len(r.Attributes))
		for k, v := range r.Attributes {
			out.Attributes[k] = v
		}
	}
	if r.Relationships != nil {
		out.Relationships = make(map[string]RelationshipData, len(r.Relationships))
		for k, v := range r.Relationships {
			records := make([]RecordIdentity, len(v.Records))
			copy(records, v.Records)
			out.Relationships[k] = RelationshipData{HasMany: v.HasMany, Records: records}
		}
	}
	return out
}

// HasOne builds a to-one relationship linkage. A nil identity clears the
// relationship.
func HasOne(identity *RecordIdentity) RelationshipData {
	if identity == nil {
		return RelationshipData{}
	}
	return RelationshipData{Records: []RecordIdentity{*identity}}
}

// HasMany builds a to-many relationship linkage in the order supplied.
func HasMany(identities ...RecordIdentity) RelationshipData {
	records := make([]RecordIdentity, len(identities))
	copy(records, identities)
	return RelationshipData{HasMany: true, Records: records}
}
