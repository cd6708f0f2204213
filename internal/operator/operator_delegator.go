package operator

import (
	"context"
	"sync"

	"github.com/carson-networks/forecast-server/internal/operator/actions"
	"github.com/carson-networks/forecast-server/internal/storage"
)

// OperatorDelegator owns the action queue and a single Operator. Every
// history rewrite goes through it, so merges never interleave within the
// process.
type OperatorDelegator struct {
	history  storage.HistoryStore
	queue    chan ActionItem
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewOperatorDelegator(history storage.HistoryStore, queueSize int) *OperatorDelegator {
	if queueSize < 1 {
		queueSize = 1
	}
	return &OperatorDelegator{
		history: history,
		queue:   make(chan ActionItem, queueSize),
	}
}

func (d *OperatorDelegator) Start() {
	d.wg.Add(1)
	op := NewOperator(d.history, d.queue)
	go func() {
		defer d.wg.Done()
		op.Run()
	}()
}

func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		close(d.queue)
		d.wg.Wait()
	})
}

// Process enqueues action and waits for it to finish or for ctx to end.
func (d *OperatorDelegator) Process(ctx context.Context, action actions.IAction) error {
	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:      ctx,
		action:   action,
		response: respCh,
	}

	select {
	case d.queue <- item:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case resp := <-respCh:
		return resp.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
