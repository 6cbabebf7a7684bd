// Package observability lets a host program watch the pipeline without the
// libraries depending on any metrics or tracing backend.
//
// Three hook sets exist: [PipelineHooks] (reading words, layout, rendering),
// [CacheHooks] (hits, misses and writes per pipeline stage) and [HTTPHooks]
// (API requests). Each defaults to a no-op. Register replacements once at
// startup, before any pipeline work:
//
//	observability.SetPipelineHooks(&unplacedCounter{})
//
// Libraries fetch the current set at the call site:
//
//	observability.Pipeline().OnWordUnplaced(ctx, w.Name, string(w.Reason))
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the word cloud pipeline.
type PipelineHooks interface {
	// Word source events. format is the input encoding, source a file name
	// or a description of inline input.
	OnReadStart(ctx context.Context, format, source string)
	OnReadComplete(ctx context.Context, format, source string, wordCount int, duration time.Duration, err error)

	// Layout events. OnWordUnplaced fires once per word that exhausted
	// every placement attempt.
	OnLayoutStart(ctx context.Context, wordCount int)
	OnWordUnplaced(ctx context.Context, word string, reason string)
	OnLayoutComplete(ctx context.Context, placed, unplaced int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache events. stage is "words", "layout" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, stage string)
	OnCacheMiss(ctx context.Context, stage string)
	OnCacheSet(ctx context.Context, stage string, size int)
}

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, requestID, method, path string)
	OnResponse(ctx context.Context, requestID, method, path string, statusCode int, duration time.Duration)
	// OnError fires for every error response, before it is written.
	OnError(ctx context.Context, requestID, method, path string, err error)
}

// NoopPipelineHooks ignores every pipeline event. Embed it to implement
// only some of the methods.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnReadStart(context.Context, string, string) {}
func (NoopPipelineHooks) OnReadComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnWordUnplaced(context.Context, string, string)                   {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks ignores every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every HTTP event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// slot holds one registered hook set.
type slot[T any] struct {
	mu    sync.RWMutex
	hooks T
	noop  T
}

func (s *slot[T]) get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hooks
}

func (s *slot[T]) set(h T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = h
}

func (s *slot[T]) reset() { s.set(s.noop) }

var (
	pipelineSlot = &slot[PipelineHooks]{hooks: NoopPipelineHooks{}, noop: NoopPipelineHooks{}}
	cacheSlot    = &slot[CacheHooks]{hooks: NoopCacheHooks{}, noop: NoopCacheHooks{}}
	httpSlot     = &slot[HTTPHooks]{hooks: NoopHTTPHooks{}, noop: NoopHTTPHooks{}}
)

// SetPipelineHooks registers pipeline hooks. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineSlot.set(h)
	}
}

// SetCacheHooks registers cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.set(h)
	}
}

// SetHTTPHooks registers HTTP hooks. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.set(h)
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return pipelineSlot.get() }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheSlot.get() }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return httpSlot.get() }

// Reset restores the no-op hooks. Tests that register hooks call it when
// they finish.
func Reset() {
	pipelineSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
