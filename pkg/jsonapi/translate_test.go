package jsonapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relario/recordsync/pkg/keymap"
	"github.com/relario/recordsync/pkg/record"
)

func newTestTranslator() (*Translator, *keymap.Memory) {
	keys := keymap.NewMemory()
	serializer := NewSerializer(keys, "remoteId")
	urls := NewURLBuilder("https://api.example.com", "")
	return NewTranslator(urls, serializer, nil, nil), keys
}

func TestTranslateAddRecord(t *testing.T) {
	tr, _ := newTestTranslator()
	op := record.NewAddRecord(&record.Record{
		Type:       "planet",
		Attributes: map[string]interface{}{"name": "Jupiter"},
	})

	req, err := tr.Translate(op, nil)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "https://api.example.com/planet", req.URL)
	assert.Equal(t, MediaType, req.Headers["Content-Type"])
	assert.JSONEq(t, `{"data":{"type":"planet","attributes":{"name":"Jupiter"}}}`, string(req.Body))
}

func TestTranslateUpdateRecord(t *testing.T) {
	tr, keys := newTestTranslator()
	keys.Set("planet", "remoteId", "p1", "12345")
	op := record.NewUpdateRecord(&record.Record{
		Type:       "planet",
		ID:         "p1",
		Attributes: map[string]interface{}{"classification": "gas giant"},
	})

	req, err := tr.Translate(op, nil)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "https://api.example.com/planet/12345", req.URL)
	assert.JSONEq(t, `{"data":{"type":"planet","id":"12345","attributes":{"classification":"gas giant"}}}`, string(req.Body))
}

func TestTranslateReplaceAttributeSendsOnlyChangedField(t *testing.T) {
	tr, _ := newTestTranslator()
	op := record.NewReplaceAttribute(record.RecordIdentity{Type: "planet", ID: "12345"}, "name", "Io")

	req, err := tr.Translate(op, nil)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "https://api.example.com/planet/12345", req.URL)
	assert.JSONEq(t, `{"data":{"type":"planet","id":"12345","attributes":{"name":"Io"}}}`, string(req.Body))
}

func TestTranslateRemoveRecordHasNoBody(t *testing.T) {
	tr, _ := newTestTranslator()
	op := record.NewRemoveRecord(record.RecordIdentity{Type: "planet", ID: "12345"})

	req, err := tr.Translate(op, nil)
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "https://api.example.com/planet/12345", req.URL)
	assert.Nil(t, req.Body)
	_, hasContentType := req.Headers["Content-Type"]
	assert.False(t, hasContentType)
}

func TestTranslateRelationshipOperations(t *testing.T) {
	tr, _ := newTestTranslator()
	owner := record.RecordIdentity{Type: "planet", ID: "12345"}
	moon := record.RecordIdentity{Type: "moon", ID: "m1"}

	add, err := tr.Translate(record.NewAddToRelatedRecords(owner, "moons", moon), nil)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, add.Method)
	assert.Equal(t, "https://api.example.com/planet/12345/relationships/moons", add.URL)
	assert.JSONEq(t, `{"data":[{"type":"moon","id":"m1"}]}`, string(add.Body))

	remove, err := tr.Translate(record.NewRemoveFromRelatedRecords(owner, "moons", moon), nil)
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, remove.Method)
	assert.Equal(t, "https://api.example.com/planet/12345/relationships/moons", remove.URL)
	assert.JSONEq(t, `{"data":[{"type":"moon","id":"m1"}]}`, string(remove.Body))
	assert.Equal(t, MediaType, remove.Headers["Content-Type"])

	clearAll, err := tr.Translate(record.NewRemoveFromRelatedRecords(owner, "moons"), nil)
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, clearAll.Method)
	assert.Nil(t, clearAll.Body)
}

func TestTranslateReplaceRelatedRecord(t *testing.T) {
	tr, _ := newTestTranslator()
	moon := record.RecordIdentity{Type: "moon", ID: "m1"}

	set, err := tr.Translate(record.NewReplaceRelatedRecord(moon, "planet", &record.RecordIdentity{Type: "planet", ID: "12345"}), nil)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, set.Method)
	assert.Equal(t, "https://api.example.com/moon/m1", set.URL)
	assert.JSONEq(t, `{"data":{"type":"moon","id":"m1","relationships":{"planet":{"data":{"type":"planet","id":"12345"}}}}}`, string(set.Body))

	cleared, err := tr.Translate(record.NewReplaceRelatedRecord(moon, "planet", nil), nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"type":"moon","id":"m1","relationships":{"planet":{"data":null}}}}`, string(cleared.Body))
}

func TestTranslateReplaceRelatedRecords(t *testing.T) {
	tr, _ := newTestTranslator()
	owner := record.RecordIdentity{Type: "planet", ID: "12345"}

	req, err := tr.Translate(record.NewReplaceRelatedRecords(owner, "moons",
		record.RecordIdentity{Type: "moon", ID: "m1"},
		record.RecordIdentity{Type: "moon", ID: "m2"},
	), nil)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.JSONEq(t, `{"data":{"type":"planet","id":"12345","relationships":{"moons":{"data":[{"type":"moon","id":"m1"},{"type":"moon","id":"m2"}]}}}}`, string(req.Body))
}

func TestTranslateReplaceKeyIsNotSent(t *testing.T) {
	tr, _ := newTestTranslator()
	req, err := tr.Translate(record.NewReplaceKey(record.RecordIdentity{Type: "planet", ID: "p1"}, "remoteId", "12345"), nil)
	require.NoError(t, err)
	assert.Nil(t, req)
}

func TestTranslateOptions(t *testing.T) {
	tr, _ := newTestTranslator()
	op := record.NewAddRecord(&record.Record{Type: "planet"})

	overridden, err := tr.Translate(op, &RequestOptions{URL: "https://other.example.com/custom"})
	require.NoError(t, err)
	assert.Equal(t, "https://other.example.com/custom", overridden.URL)

	included, err := tr.Translate(op, &RequestOptions{Include: []string{"moons", "star"}})
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/planet?include=moons%2Cstar", included.URL)

	// include never decorates DELETE requests
	deleted, err := tr.Translate(record.NewRemoveRecord(record.RecordIdentity{Type: "planet", ID: "p1"}),
		&RequestOptions{Include: []string{"moons"}})
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/planet/p1", deleted.URL)
}

func TestTranslateUnresolvedIdentity(t *testing.T) {
	tr, _ := newTestTranslator()
	op := record.NewRemoveRecord(record.RecordIdentity{Type: "planet"})
	_, err := tr.Translate(op, nil)
	assert.ErrorIs(t, err, ErrUnresolvedIdentity)
}

func TestTranslateDefaultHeaders(t *testing.T) {
	keys := keymap.NewMemory()
	serializer := NewSerializer(keys, "remoteId")
	urls := NewURLBuilder("https://api.example.com", "v1")
	tr := NewTranslator(urls, serializer, map[string]string{"X-Client": "recordsync"}, nil)

	req, err := tr.Translate(record.NewAddRecord(&record.Record{Type: "planet"}), nil)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1/planet", req.URL)
	assert.Equal(t, "recordsync", req.Headers["X-Client"])
	assert.Equal(t, MediaType, req.Headers["Content-Type"])
}
