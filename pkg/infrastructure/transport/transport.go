package transport

import (
	"context"
	"strings"
	"time"

	"github.com/vsinha/factoryops/pkg/domain/entities"
)

// Remote is a place the whole dataset can be pushed to and pulled from
type Remote interface {
	Push(ctx context.Context, data *entities.Dataset) error
	Pull(ctx context.Context) (*entities.Dataset, error)
}

// New picks a transport for target: file:// paths use the file transport,
// anything else is treated as an HTTP endpoint. An empty target returns nil.
func New(target string, timeout time.Duration) Remote {
	target = strings.TrimSpace(target)
	switch {
	case target == "":
		return nil
	case strings.HasPrefix(target, "file://"):
		return NewFileTransport(strings.TrimPrefix(target, "file://"))
	default:
		return NewHTTPTransport(target, timeout)
	}
}
