package actions

import (
	"context"

	"github.com/carson-networks/forecast-server/internal/storage"
)

// IAction is a unit of work that reads and rewrites the history.
type IAction interface {
	Perform(ctx context.Context, history storage.HistoryStore) error
}
