package engine

import "sync"

// Publisher delivers computation results to a consumer while enforcing the
// generation contract: a result is dropped when a newer generation has
// already been issued or published. Outdated computations run to completion
// but are never delivered; there is no hard cancellation across the fetch
// boundary.
type Publisher struct {
	engine *Engine

	mu        sync.Mutex
	published uint64
}

// NewPublisher creates a Publisher bound to the engine whose generation
// counter defines freshness.
func NewPublisher(e *Engine) *Publisher {
	return &Publisher{engine: e}
}

// Publish delivers the view through emit if it is still fresh. Returns false
// when the result was discarded as stale.
func (p *Publisher) Publish(generation uint64, emit func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if generation < p.engine.LatestGeneration() {
		return false
	}
	if generation < p.published {
		return false
	}

	p.published = generation
	emit()
	return true
}
