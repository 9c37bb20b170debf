package jsonapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relario/recordsync/pkg/transport"
)

// stubTransport lets tests script transport behavior per request.
type stubTransport struct {
	send func(ctx context.Context, req *transport.Request) (*transport.Response, error)
}

func (s *stubTransport) Send(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	return s.send(ctx, req)
}

func TestExecuteTimeoutMessageStatesThreshold(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	e := NewExecutor(transport.NewHTTP(), 0)
	_, err := e.Execute(context.Background(), &RequestDescriptor{
		Method:  http.MethodGet,
		URL:     server.URL,
		Timeout: 10 * time.Millisecond,
	})

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "No fetch response within 10ms.", netErr.Description)
}

func TestExecuteDefaultTimeoutApplies(t *testing.T) {
	slow := &stubTransport{send: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}

	e := NewExecutor(slow, 25*time.Millisecond)
	_, err := e.Execute(context.Background(), &RequestDescriptor{Method: http.MethodGet, URL: "http://example.com"})

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "No fetch response within 25ms.", netErr.Description)
}

func TestExecuteTransportRejectionKeepsMessage(t *testing.T) {
	broken := &stubTransport{send: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
		return nil, errors.New("connection refused")
	}}

	e := NewExecutor(broken, 0)
	_, err := e.Execute(context.Background(), &RequestDescriptor{Method: http.MethodGet, URL: "http://example.com"})

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "connection refused", netErr.Description)
}

func TestExecuteClassifiesClientError(t *testing.T) {
	rejecting := &stubTransport{send: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
		return &transport.Response{
			Status: http.StatusUnprocessableEntity,
			Body:   []byte(`{"errors":[{"title":"Invalid planet","detail":"name is required"}]}`),
		}, nil
	}}

	e := NewExecutor(rejecting, 0)
	_, err := e.Execute(context.Background(), &RequestDescriptor{Method: http.MethodPost, URL: "http://example.com"})

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusUnprocessableEntity, clientErr.Status)
	assert.Equal(t, http.StatusText(http.StatusUnprocessableEntity), clientErr.Description)
	require.NotNil(t, clientErr.Data)
	require.Len(t, clientErr.Data.Errors, 1)
	assert.Equal(t, "Invalid planet", clientErr.Data.Errors[0].Title)
}

func TestExecuteClassifiesServerError(t *testing.T) {
	failing := &stubTransport{send: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
		return &transport.Response{Status: http.StatusBadGateway}, nil
	}}

	e := NewExecutor(failing, 0)
	_, err := e.Execute(context.Background(), &RequestDescriptor{Method: http.MethodPost, URL: "http://example.com"})

	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusBadGateway, serverErr.Status)
	assert.Equal(t, "Bad Gateway", serverErr.Description)
	assert.Nil(t, serverErr.Data)
}

func TestExecuteNoContentYieldsNoDocument(t *testing.T) {
	empty := &stubTransport{send: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
		return &transport.Response{Status: http.StatusNoContent}, nil
	}}

	e := NewExecutor(empty, 0)
	doc, err := e.Execute(context.Background(), &RequestDescriptor{Method: http.MethodDelete, URL: "http://example.com"})
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestExecuteParsesCreatedDocument(t *testing.T) {
	created := &stubTransport{send: func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
		return &transport.Response{
			Status: http.StatusCreated,
			Body:   []byte(`{"data":{"type":"planet","id":"12345","attributes":{"name":"Jupiter"}}}`),
		}, nil
	}}

	e := NewExecutor(created, 0)
	doc, err := e.Execute(context.Background(), &RequestDescriptor{Method: http.MethodPost, URL: "http://example.com"})
	require.NoError(t, err)
	require.NotNil(t, doc)

	primary, err := doc.PrimaryResource()
	require.NoError(t, err)
	require.NotNil(t, primary)
	assert.Equal(t, "12345", primary.ID)
}
