package transport

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"time"
)

// Request is a single wire request, constructed once and executed once.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// Response carries the status, headers and raw body of a completed
// request.
type Response struct {
	Status  int
	Headers http.Header
	Body    []byte
}

// Transport is the injectable send-one-request boundary. Deadlines are
// supplied through the context; classification of failures happens in
// the caller.
type Transport interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// HTTP is the net/http backed Transport.
type HTTP struct {
	client *http.Client
}

// NewHTTP creates an HTTP transport with sane connection tuning.
func NewHTTP() *HTTP {
	return &HTTP{
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConnsPerHost:   10,
				ResponseHeaderTimeout: 30 * time.Second,
				DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
			},
		},
	}
}

// NewHTTPWithClient creates an HTTP transport over a caller-owned client.
func NewHTTPWithClient(client *http.Client) *HTTP {
	return &HTTP{client: client}
}

func (h *HTTP) Send(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, err
	}
	for name, value := range req.Headers {
		httpReq.Header.Set(name, value)
	}

	httpResp, err := h.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{
		Status:  httpResp.StatusCode,
		Headers: httpResp.Header,
		Body:    data,
	}, nil
}
