package impl

import "context"

// requester keeps at most one live routing request per owning state machine.
// Starting a new generation cancels the previous request, and a stale
// generation's result is never applied. Not self-synchronized: callers hold
// their own lock around every method.
type requester struct {
	generation uint64
	cancel     context.CancelFunc
}

// next cancels any outstanding request and opens a new generation. The
// returned context governs the new request.
func (r *requester) next(parent context.Context) (context.Context, uint64) {
	if r.cancel != nil {
		r.cancel()
	}

	ctx, cancel := context.WithCancel(parent)
	r.cancel = cancel
	r.generation++

	return ctx, r.generation
}

// current reports whether gen is still the live generation. A resolution
// handler that observes false must apply nothing.
func (r *requester) current(gen uint64) bool {
	return gen == r.generation
}

// stop cancels any outstanding request and invalidates its generation
// without opening a new one.
func (r *requester) stop() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.generation++
}
