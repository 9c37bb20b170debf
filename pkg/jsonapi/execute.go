package jsonapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/relario/recordsync/pkg/metrics"
	"github.com/relario/recordsync/pkg/transport"
)

// Executor issues planned requests one at a time and classifies the
// outcome. Requests within a transform are strictly sequential; the
// caller awaits each result before translating the next operation.
type Executor struct {
	transport      transport.Transport
	defaultTimeout time.Duration
}

// NewExecutor creates an executor over a transport. defaultTimeout
// applies when a request carries none; zero means no client deadline.
func NewExecutor(tr transport.Transport, defaultTimeout time.Duration) *Executor {
	return &Executor{transport: tr, defaultTimeout: defaultTimeout}
}

// Execute sends one request. It returns the parsed response document for
// a 200/201 with a body, nil for a 204/empty-body success, and one of
// NetworkError, ClientError or ServerError otherwise.
func (e *Executor) Execute(ctx context.Context, req *RequestDescriptor) (*Document, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = e.defaultTimeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := e.transport.Send(ctx, &transport.Request{
		Method:  req.Method,
		URL:     req.URL,
		Headers: req.Headers,
		Body:    req.Body,
	})
	elapsed := time.Since(start)

	if err != nil {
		if timeout > 0 && errors.Is(err, context.DeadlineExceeded) {
			metrics.ObserveRequest(req.Method, metrics.OutcomeTimeout, elapsed)
			log.Warn().Str("url", req.URL).Dur("timeout", timeout).Msg("request timed out")
			return nil, NewTimeoutError(timeout)
		}
		metrics.ObserveRequest(req.Method, metrics.OutcomeNetwork, elapsed)
		log.Warn().Err(err).Str("url", req.URL).Msg("transport failure")
		return nil, &NetworkError{Description: err.Error()}
	}

	switch {
	case resp.Status >= 500:
		metrics.ObserveRequest(req.Method, metrics.OutcomeServer, elapsed)
		return nil, &ServerError{
			Status:      resp.Status,
			Description: http.StatusText(resp.Status),
			Data:        parseErrorBody(resp.Body),
		}
	case resp.Status >= 400:
		metrics.ObserveRequest(req.Method, metrics.OutcomeClient, elapsed)
		return nil, &ClientError{
			Status:      resp.Status,
			Description: http.StatusText(resp.Status),
			Data:        parseErrorBody(resp.Body),
		}
	}

	metrics.ObserveRequest(req.Method, metrics.OutcomeSuccess, elapsed)
	if resp.Status == http.StatusNoContent || len(resp.Body) == 0 {
		return nil, nil
	}
	doc, err := ParseDocument(resp.Body)
	if err != nil {
		return nil, &NetworkError{Description: err.Error()}
	}
	return doc, nil
}

func parseErrorBody(body []byte) *Document {
	if len(body) == 0 {
		return nil
	}
	doc, err := ParseDocument(body)
	if err != nil {
		return nil
	}
	return doc
}
