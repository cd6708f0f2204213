package operator

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/forecast-server/internal/operator/actions"
	"github.com/carson-networks/forecast-server/internal/storage"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	history storage.HistoryStore
	queue   chan ActionItem
}

func NewOperator(history storage.HistoryStore, queue chan ActionItem) *Operator {
	return &Operator{
		history: history,
		queue:   queue,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

// processItem skips actions whose caller already gave up, so an abandoned
// upload never rewrites the history.
func (o *Operator) processItem(item ActionItem) {
	if err := item.ctx.Err(); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	start := time.Now()
	err := item.action.Perform(item.ctx, o.history)
	entry := logrus.WithFields(logrus.Fields{
		"action":     fmt.Sprintf("%T", item.action),
		"durationMs": time.Since(start).Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Warn("Operator.processItem.failed")
	} else {
		entry.Debug("Operator.processItem.done")
	}
	item.response <- ActionItemResponse{err: err}
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
