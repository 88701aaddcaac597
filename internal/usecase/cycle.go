package usecase

import "context"

// CycleHandle is the future for one asynchronous collection cycle. The
// caller awaits Done or blocks on Result; there is no shared in-progress
// flag anywhere.
type CycleHandle struct {
	done   chan struct{}
	cancel context.CancelFunc
	result CycleResult
	err    error
}

// Start launches a cycle in the background and returns its handle.
func (p *Pipeline) Start(ctx context.Context, req CycleRequest) *CycleHandle {
	ctx, cancel := context.WithCancel(ctx)
	h := &CycleHandle{done: make(chan struct{}), cancel: cancel}

	go func() {
		defer close(h.done)
		defer cancel()
		h.result, h.err = p.Run(ctx, req)
	}()

	return h
}

// Done is closed when the cycle finishes.
func (h *CycleHandle) Done() <-chan struct{} {
	return h.done
}

// Running reports whether the cycle is still in flight.
func (h *CycleHandle) Running() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// Cancel aborts the cycle. In-flight adapters stop advancing through
// their strategy chains and the cycle finishes with whatever it has.
func (h *CycleHandle) Cancel() {
	h.cancel()
}

// Result blocks until the cycle finishes and returns its outcome.
func (h *CycleHandle) Result() (CycleResult, error) {
	<-h.done
	return h.result, h.err
}
