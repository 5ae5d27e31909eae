package events

import (
	"context"
	"time"
)

// Pusher uploads the current local dataset
type Pusher interface {
	Push(ctx context.Context) error
}

// AutoSyncHandler pushes after every local mutation. A replacement that
// came from a pull is not pushed back.
type AutoSyncHandler struct {
	pusher  Pusher
	timeout time.Duration
}

// NewAutoSyncHandler creates a handler; timeout bounds each push, zero
// means none
func NewAutoSyncHandler(pusher Pusher, timeout time.Duration) *AutoSyncHandler {
	return &AutoSyncHandler{pusher: pusher, timeout: timeout}
}

func (h *AutoSyncHandler) CanHandle(eventType string) bool {
	for _, t := range MutationEvents {
		if t == eventType {
			return true
		}
	}
	return false
}

func (h *AutoSyncHandler) Handle(event Event) error {
	if replaced, ok := event.Data().(DatasetReplaced); ok && replaced.Source == SourcePull {
		return nil
	}

	ctx := context.Background()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	return h.pusher.Push(ctx)
}
