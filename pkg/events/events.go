package events

import (
	"sync"

	"github.com/relario/recordsync/pkg/record"
)

// The event names published by a source.
const (
	BeforePushEvent = "beforePush"
	TransformEvent  = "transform"
)

// BeforePushFunc observes a transform before any of its requests are
// issued. A listener that appends the transform id to the shared log at
// this point causes the push to be skipped entirely.
type BeforePushFunc func(t *record.Transform)

// TransformFunc observes each transform actually logged, in emission
// order: the pushed transform first, then each merge-produced transform.
type TransformFunc func(t *record.Transform)

// Registry holds listeners and delivers events synchronously, in
// registration order, before the emitting call returns.
type Registry struct {
	mu         sync.RWMutex
	beforePush []BeforePushFunc
	transform  []TransformFunc
}

// NewRegistry creates an empty listener registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// OnBeforePush registers a beforePush listener.
func (r *Registry) OnBeforePush(fn BeforePushFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.beforePush = append(r.beforePush, fn)
}

// OnTransform registers a transform listener.
func (r *Registry) OnTransform(fn TransformFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transform = append(r.transform, fn)
}

// EmitBeforePush delivers the beforePush event.
func (r *Registry) EmitBeforePush(t *record.Transform) {
	r.mu.RLock()
	listeners := make([]BeforePushFunc, len(r.beforePush))
	copy(listeners, r.beforePush)
	r.mu.RUnlock()
	for _, fn := range listeners {
		fn(t)
	}
}

// EmitTransform delivers the transform event.
func (r *Registry) EmitTransform(t *record.Transform) {
	r.mu.RLock()
	listeners := make([]TransformFunc, len(r.transform))
	copy(listeners, r.transform)
	r.mu.RUnlock()
	for _, fn := range listeners {
		fn(t)
	}
}
