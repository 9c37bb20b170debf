package jsonapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/relario/recordsync/pkg/record"
)

// RequestOptions carries the per-call knobs, each overriding the source
// default: an absolute URL override, relationships to side-load, and the
// request timeout.
type RequestOptions struct {
	URL     string
	Include []string
	Timeout time.Duration
}

// RequestDescriptor is a single planned request: constructed once,
// executed once.
type RequestDescriptor struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
	Timeout time.Duration
}

// Translator maps one mutation operation to a request descriptor.
type Translator struct {
	urls       *URLBuilder
	serializer *Serializer
	headers    map[string]string
	rewriter   *Rewriter
}

// NewTranslator creates a translator. Default headers are attached to
// every request; rewriter may be nil.
func NewTranslator(urls *URLBuilder, serializer *Serializer, headers map[string]string, rewriter *Rewriter) *Translator {
	return &Translator{urls: urls, serializer: serializer, headers: headers, rewriter: rewriter}
}

type requestDocument struct {
	Data interface{} `json:"data"`
}

// Translate produces the request for an operation. replaceKey represents
// state already reflected by a prior response and is not sent over the
// wire: it translates to a nil descriptor.
func (t *Translator) Translate(op record.Operation, opts *RequestOptions) (*RequestDescriptor, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	if err := op.Validate(); err != nil {
		return nil, err
	}

	switch op.Kind {
	case record.ReplaceKey:
		return nil, nil

	case record.AddRecord:
		res := t.serializer.Serialize(op.Record)
		return t.request(http.MethodPost,
			t.urls.ResourceCollectionURL(op.Record.Type),
			&requestDocument{Data: res}, opts)

	case record.UpdateRecord:
		wireID, err := t.resolveID(op.Record.Identity(), op.Record.Keys)
		if err != nil {
			return nil, err
		}
		res := t.serializer.Serialize(op.Record)
		res.ID = wireID
		return t.request(http.MethodPatch,
			t.urls.ResourceURL(op.Record.Type, wireID),
			&requestDocument{Data: res}, opts)

	case record.RemoveRecord:
		wireID, err := t.resolveID(op.Identity, nil)
		if err != nil {
			return nil, err
		}
		return t.request(http.MethodDelete,
			t.urls.ResourceURL(op.Identity.Type, wireID), nil, opts)

	case record.ReplaceAttribute:
		wireID, err := t.resolveID(op.Identity, nil)
		if err != nil {
			return nil, err
		}
		res := &Resource{
			Type:       op.Identity.Type,
			ID:         wireID,
			Attributes: map[string]interface{}{op.Attribute: op.Value},
		}
		return t.request(http.MethodPatch,
			t.urls.ResourceURL(op.Identity.Type, wireID),
			&requestDocument{Data: res}, opts)

	case record.AddToRelatedRecords:
		wireID, err := t.resolveID(op.Identity, nil)
		if err != nil {
			return nil, err
		}
		return t.request(http.MethodPost,
			t.urls.ResourceRelationshipURL(op.Identity.Type, wireID, op.Relationship),
			&requestDocument{Data: t.identifiers(op.RelatedRecords)}, opts)

	case record.RemoveFromRelatedRecords:
		wireID, err := t.resolveID(op.Identity, nil)
		if err != nil {
			return nil, err
		}
		target := t.urls.ResourceRelationshipURL(op.Identity.Type, wireID, op.Relationship)
		if len(op.RelatedRecords) == 0 {
			// Removing the whole relationship carries no body.
			return t.request(http.MethodDelete, target, nil, opts)
		}
		return t.request(http.MethodDelete, target,
			&requestDocument{Data: t.identifiers(op.RelatedRecords)}, opts)

	case record.ReplaceRelatedRecord:
		wireID, err := t.resolveID(op.Identity, nil)
		if err != nil {
			return nil, err
		}
		var one *ResourceIdentifier
		if op.RelatedRecord != nil {
			identifier := t.serializer.WireIdentifier(*op.RelatedRecord)
			one = &identifier
		}
		res := &Resource{
			Type:          op.Identity.Type,
			ID:            wireID,
			Relationships: map[string]Relationship{op.Relationship: {One: one}},
		}
		return t.request(http.MethodPatch,
			t.urls.ResourceURL(op.Identity.Type, wireID),
			&requestDocument{Data: res}, opts)

	case record.ReplaceRelatedRecords:
		wireID, err := t.resolveID(op.Identity, nil)
		if err != nil {
			return nil, err
		}
		res := &Resource{
			Type: op.Identity.Type,
			ID:   wireID,
			Relationships: map[string]Relationship{
				op.Relationship: {HasMany: true, Many: t.identifiers(op.RelatedRecords)},
			},
		}
		return t.request(http.MethodPatch,
			t.urls.ResourceURL(op.Identity.Type, wireID),
			&requestDocument{Data: res}, opts)
	}
	return nil, record.ErrUnknownOperation
}

// resolveID resolves the wire id for a record that must already exist on
// the remote side.
func (t *Translator) resolveID(identity record.RecordIdentity, keys map[string]string) (string, error) {
	wireID := t.serializer.WireID(identity, keys)
	if wireID == "" {
		return "", ErrUnresolvedIdentity
	}
	return wireID, nil
}

func (t *Translator) identifiers(identities []record.RecordIdentity) []ResourceIdentifier {
	out := make([]ResourceIdentifier, 0, len(identities))
	for _, identity := range identities {
		out = append(out, t.serializer.WireIdentifier(identity))
	}
	return out
}

func (t *Translator) request(method, target string, body *requestDocument, opts *RequestOptions) (*RequestDescriptor, error) {
	if opts.URL != "" {
		target = opts.URL
	}
	if method != http.MethodDelete {
		target = appendInclude(target, opts.Include)
	}

	headers := make(map[string]string, len(t.headers)+1)
	for k, v := range t.headers {
		headers[k] = v
	}

	req := &RequestDescriptor{
		Method:  method,
		URL:     target,
		Headers: headers,
		Timeout: opts.Timeout,
	}
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		if t.rewriter != nil {
			data = t.rewriter.Rewrite(data)
		}
		req.Body = data
		headers["Content-Type"] = MediaType
	}
	return req, nil
}
