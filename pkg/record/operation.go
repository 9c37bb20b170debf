package record

// The operation kinds.
const (
	AddRecord                OperationKind = "addRecord"
	UpdateRecord             OperationKind = "updateRecord"
	RemoveRecord             OperationKind = "removeRecord"
	ReplaceAttribute         OperationKind = "replaceAttribute"
	ReplaceKey               OperationKind = "replaceKey"
	AddToRelatedRecords      OperationKind = "addToRelatedRecords"
	RemoveFromRelatedRecords OperationKind = "removeFromRelatedRecords"
	ReplaceRelatedRecord     OperationKind = "replaceRelatedRecord"
	ReplaceRelatedRecords    OperationKind = "replaceRelatedRecords"
)

// OperationKind discriminates the operation union.
type OperationKind string

// Operation is a single typed mutation intent. Kind selects the variant;
// the remaining fields carry the minimal record reference plus the
// mutation payload for that variant.
type Operation struct {
	Kind OperationKind `json:"op"`

	// Record carries the full payload for addRecord and updateRecord.
	Record *Record `json:"record,omitempty"`

	// Identity is the target record reference for every other variant.
	Identity RecordIdentity `json:"identity,omitempty"`

	// Attribute/Value for replaceAttribute.
	Attribute string      `json:"attribute,omitempty"`
	Value     interface{} `json:"value,omitempty"`

	// Key/KeyValue for replaceKey.
	Key      string `json:"key,omitempty"`
	KeyValue string `json:"key_value,omitempty"`

	// Relationship names the edge for the relationship variants.
	Relationship string `json:"relationship,omitempty"`

	// RelatedRecord is the to-one linkage for replaceRelatedRecord;
	// nil clears the relationship.
	RelatedRecord *RecordIdentity `json:"related_record,omitempty"`

	// RelatedRecords is the to-many linkage for the remaining
	// relationship variants, order preserved.
	RelatedRecords []RecordIdentity `json:"related_records,omitempty"`
}

// Target returns the identity of the record the operation mutates.
func (o *Operation) Target() RecordIdentity {
	if o.Record != nil {
		return o.Record.Identity()
	}
	return o.Identity
}

// Validate checks that the operation carries the payload its kind requires.
func (o *Operation) Validate() error {
	switch o.Kind {
	case AddRecord, UpdateRecord:
		if o.Record == nil || o.Record.Type == "" {
			return ErrMissingRecord
		}
	case RemoveRecord:
		if o.Identity.Type == "" {
			return ErrMissingIdentity
		}
	case ReplaceAttribute:
		if o.Identity.Type == "" {
			return ErrMissingIdentity
		}
		if o.Attribute == "" {
			return ErrMissingAttribute
		}
	case ReplaceKey:
		if o.Identity.Type == "" {
			return ErrMissingIdentity
		}
		if o.Key == "" {
			return ErrMissingKey
		}
	case AddToRelatedRecords, RemoveFromRelatedRecords, ReplaceRelatedRecord, ReplaceRelatedRecords:
		if o.Identity.Type == "" {
			return ErrMissingIdentity
		}
		if o.Relationship == "" {
			return ErrMissingRelationship
		}
	default:
		return ErrUnknownOperation
	}
	return nil
}

// NewAddRecord builds an addRecord operation.
func NewAddRecord(rec *Record) Operation {
	return Operation{Kind: AddRecord, Record: rec}
}

// NewUpdateRecord builds an updateRecord operation.
func NewUpdateRecord(rec *Record) Operation {
	return Operation{Kind: UpdateRecord, Record: rec}
}

// NewRemoveRecord builds a removeRecord operation.
func NewRemoveRecord(identity RecordIdentity) Operation {
	return Operation{Kind: RemoveRecord, Identity: identity}
}

// NewReplaceAttribute builds a replaceAttribute operation.
func NewReplaceAttribute(identity RecordIdentity, attribute string, value interface{}) Operation {
	return Operation{Kind: ReplaceAttribute, Identity: identity, Attribute: attribute, Value: value}
}

// NewReplaceKey builds a replaceKey operation.
func NewReplaceKey(identity RecordIdentity, key, value string) Operation {
	return Operation{Kind: ReplaceKey, Identity: identity, Key: key, KeyValue: value}
}

// NewAddToRelatedRecords builds an addToRelatedRecords operation.
func NewAddToRelatedRecords(identity RecordIdentity, relationship string, related ...RecordIdentity) Operation {
	return Operation{Kind: AddToRelatedRecords, Identity: identity, Relationship: relationship, RelatedRecords: related}
}

// NewRemoveFromRelatedRecords builds a removeFromRelatedRecords operation.
func NewRemoveFromRelatedRecords(identity RecordIdentity, relationship string, related ...RecordIdentity) Operation {
	return Operation{Kind: RemoveFromRelatedRecords, Identity: identity, Relationship: relationship, RelatedRecords: related}
}

// NewReplaceRelatedRecord builds a replaceRelatedRecord operation. A nil
// related identity clears the relationship.
func NewReplaceRelatedRecord(identity RecordIdentity, relationship string, related *RecordIdentity) Operation {
	return Operation{Kind: ReplaceRelatedRecord, Identity: identity, Relationship: relationship, RelatedRecord: related}
}

// NewReplaceRelatedRecords builds a replaceRelatedRecords operation.
func NewReplaceRelatedRecords(identity RecordIdentity, relationship string, related ...RecordIdentity) Operation {
	return Operation{Kind: ReplaceRelatedRecords, Identity: identity, Relationship: relationship, RelatedRecords: related}
}
