package jsonapi

import (
	"bytes"
	"encoding/json"

	"github.com/pquerna/ffjson/ffjson"
)

// MediaType is the JSON:API content type.
const MediaType = "application/vnd.api+json"

// ResourceIdentifier is the wire-level (type, id) reference.
type ResourceIdentifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Resource is the wire-level representation of a record.
type Resource struct {
	Type          string                  `json:"type"`
	ID            string                  `json:"id,omitempty"`
	Attributes    map[string]interface{}  `json:"attributes,omitempty"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
}

// Relationship is the wire-level linkage envelope: {"data": null}, a
// single identifier, or an identifier array.
type Relationship struct {
	One     *ResourceIdentifier
	Many    []ResourceIdentifier
	HasMany bool
}

func (r Relationship) MarshalJSON() ([]byte, error) {
	if r.HasMany {
		many := r.Many
		if many == nil {
			many = []ResourceIdentifier{}
		}
		return json.Marshal(map[string]interface{}{"data": many})
	}
	if r.One == nil {
		return []byte(`{"data":null}`), nil
	}
	return json.Marshal(map[string]interface{}{"data": r.One})
}

func (r *Relationship) UnmarshalJSON(data []byte) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	linkage := bytes.TrimSpace(envelope.Data)
	if len(linkage) == 0 || bytes.Equal(linkage, []byte("null")) {
		r.One, r.Many, r.HasMany = nil, nil, false
		return nil
	}
	if linkage[0] == '[' {
		r.One, r.HasMany = nil, true
		return json.Unmarshal(linkage, &r.Many)
	}
	r.HasMany, r.Many = false, nil
	r.One = &ResourceIdentifier{}
	return json.Unmarshal(linkage, r.One)
}

// ErrorObject is a JSON:API error member.
type ErrorObject struct {
	ID     string                 `json:"id,omitempty"`
	Status string                 `json:"status,omitempty"`
	Code   string                 `json:"code,omitempty"`
	Title  string                 `json:"title,omitempty"`
	Detail string                 `json:"detail,omitempty"`
	Meta   map[string]interface{} `json:"meta,omitempty"`
}

// Document is a top-level JSON:API document. Data is kept raw because it
// may hold a single resource, a collection or null.
type Document struct {
	Data     json.RawMessage `json:"data,omitempty"`
	Included []Resource      `json:"included,omitempty"`
	Errors   []ErrorObject   `json:"errors,omitempty"`
}

// ParseDocument decodes a response body into a document.
func ParseDocument(body []byte) (*Document, error) {
	doc := &Document{}
	if err := ffjson.Unmarshal(body, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// HasPrimary reports whether the document carries non-null primary data.
func (d *Document) HasPrimary() bool {
	data := bytes.TrimSpace(d.Data)
	return len(data) > 0 && !bytes.Equal(data, []byte("null"))
}

// PrimaryResource returns the primary data as a single resource, or nil
// when the document carries none or a collection.
func (d *Document) PrimaryResource() (*Resource, error) {
	data := bytes.TrimSpace(d.Data)
	if len(data) == 0 || data[0] != '{' {
		return nil, nil
	}
	res := &Resource{}
	if err := ffjson.Unmarshal(data, res); err != nil {
		return nil, err
	}
	return res, nil
}

// PrimaryCollection returns the primary data as a resource slice, or nil
// when the document carries none or a single resource.
func (d *Document) PrimaryCollection() ([]Resource, error) {
	data := bytes.TrimSpace(d.Data)
	if len(data) == 0 || data[0] != '[' {
		return nil, nil
	}
	var out []Resource
	if err := ffjson.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
