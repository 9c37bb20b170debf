package jsonapi

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/relario/recordsync/pkg/config"
	"github.com/relario/recordsync/pkg/events"
	"github.com/relario/recordsync/pkg/keymap"
	"github.com/relario/recordsync/pkg/metrics"
	"github.com/relario/recordsync/pkg/oplog"
	"github.com/relario/recordsync/pkg/query"
	"github.com/relario/recordsync/pkg/record"
	"github.com/relario/recordsync/pkg/transport"
)

var logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Source pushes transforms at a JSON:API server and folds the responses
// back into the change history.
type Source struct {
	name       string
	cfg        *config.Config
	transport  transport.Transport
	keys       keymap.Map
	log        oplog.Log
	listeners  *events.Registry
	serializer *Serializer
	urls       *URLBuilder
	translator *Translator
	planner    *Planner
	executor   *Executor
	merger     *Merger
	queries    *query.Builder
}

// Option overrides a collaborator wired by New.
type Option func(*Source)

// WithTransport injects the transport, typically a stub in tests.
func WithTransport(tr transport.Transport) Option {
	return func(s *Source) { s.transport = tr }
}

// WithKeyMap injects the externally owned key map.
func WithKeyMap(m keymap.Map) Option {
	return func(s *Source) { s.keys = m }
}

// WithLog injects the externally owned transform log.
func WithLog(l oplog.Log) Option {
	return func(s *Source) { s.log = l }
}

// WithListeners injects a shared listener registry.
func WithListeners(r *events.Registry) Option {
	return func(s *Source) { s.listeners = r }
}

// New wires a source from configuration. Collaborators not overridden by
// options get in-process defaults.
func New(cfg *config.Config, opts ...Option) (*Source, error) {
	s := &Source{
		name:      cfg.Name,
		cfg:       cfg,
		transport: transport.NewHTTP(),
		keys:      keymap.NewMemory(),
		log:       oplog.NewMemory(),
		listeners: events.NewRegistry(),
		queries:   query.NewBuilder(),
	}
	for _, opt := range opts {
		opt(s)
	}

	var rewriter *Rewriter
	if cfg.Rewrite.Enabled {
		rewriter = NewRewriter()
		for _, op := range cfg.Rewrite.Operations {
			rewriter.RegisterOperation(op)
		}
		if err := rewriter.Initialize(); err != nil {
			return nil, err
		}
	}

	s.serializer = NewSerializer(s.keys, cfg.Remote.KeyName)
	s.urls = NewURLBuilder(cfg.Remote.Host, cfg.Remote.Namespace)
	s.translator = NewTranslator(s.urls, s.serializer, cfg.Remote.Headers, rewriter)
	s.planner = NewPlanner(cfg.Remote.MaxRequestsPerTransform)
	s.executor = NewExecutor(s.transport, cfg.Remote.Timeout)
	s.merger = NewMerger(s.keys, cfg.Remote.KeyName, s.serializer)
	return s, nil
}

// Events returns the listener registry.
func (s *Source) Events() *events.Registry { return s.listeners }

// KeyMap returns the key map the source consults and updates.
func (s *Source) KeyMap() keymap.Map { return s.keys }

// Log returns the transform log.
func (s *Source) Log() oplog.Log { return s.log }

// Query returns the expression builder for the symmetric read path.
func (s *Source) Query() *query.Builder { return s.queries }

// PushOptions carries per-push overrides; each zero value defers to the
// source configuration.
type PushOptions struct {
	URL         string
	Include     []string
	Timeout     time.Duration
	MaxRequests int
}

// PushResult reports the transforms actually logged, in emission order:
// the pushed transform first, then each merge-produced transform.
type PushResult struct {
	Transforms []*record.Transform
}

// Push plans, executes and merges one transform.
//
// The beforePush event fires before any request is issued; a listener
// that appends the transform id to the log causes Push to skip execution
// and return an empty result. Requests are issued strictly sequentially.
// A failed request aborts the remainder of the transform; requests
// already merged are not rolled back: their follow-up transforms stay
// logged and are returned alongside the error. This partial-failure
// behavior is deliberate; callers needing atomicity must keep transforms
// to a single request.
func (s *Source) Push(ctx context.Context, t *record.Transform, opts *PushOptions) (*PushResult, error) {
	if opts == nil {
		opts = &PushOptions{}
	}

	s.listeners.EmitBeforePush(t)
	if s.log.Contains(t.ID) {
		logger.Debug().Str("source", s.name).Str("transform", t.ID).Msg("transform already logged, skipping push")
		return &PushResult{}, nil
	}

	planned, err := s.planner.Plan(t, opts.MaxRequests)
	if err != nil {
		return nil, err
	}

	result := &PushResult{}
	if err := s.announce(t, result); err != nil {
		return result, err
	}
	metrics.TransformPushed()

	ropts := &RequestOptions{
		URL:     opts.URL,
		Include: opts.Include,
		Timeout: opts.Timeout,
	}
	if len(ropts.Include) == 0 {
		ropts.Include = s.cfg.Remote.Include
	}

	for _, op := range planned {
		// Translation happens just before the send so identifiers merged
		// from earlier responses in this transform resolve.
		req, err := s.translator.Translate(op, ropts)
		if err != nil {
			return result, err
		}
		if req == nil {
			continue
		}

		doc, err := s.executor.Execute(ctx, req)
		if err != nil {
			logger.Warn().Str("source", s.name).Str("transform", t.ID).
				Str("method", req.Method).Str("url", req.URL).Err(err).
				Msg("aborting transform after failed request")
			return result, err
		}

		merged, err := s.merger.Merge(op, doc)
		if err != nil {
			return result, err
		}
		for _, mt := range merged {
			if err := s.announce(mt, result); err != nil {
				return result, err
			}
		}
		metrics.TransformsMerged(len(merged))
	}

	logger.Debug().Str("source", s.name).Str("transform", t.ID).
		Int("logged", len(result.Transforms)).Msg("push complete")
	return result, nil
}

func (s *Source) announce(t *record.Transform, result *PushResult) error {
	if err := s.log.Append(t); err != nil {
		return err
	}
	result.Transforms = append(result.Transforms, t)
	s.listeners.EmitTransform(t)
	return nil
}
