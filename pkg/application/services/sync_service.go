package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vsinha/factoryops/pkg/domain/entities"
	"github.com/vsinha/factoryops/pkg/domain/repositories"
	"github.com/vsinha/factoryops/pkg/infrastructure/events"
)

// ErrSyncNotConfigured is returned by Pull when no remote is set
var ErrSyncNotConfigured = errors.New("remote sync is not configured")

// Transport moves a whole dataset to and from the remote copy
type Transport interface {
	Push(ctx context.Context, data *entities.Dataset) error
	Pull(ctx context.Context) (*entities.Dataset, error)
}

// SyncStatus is the state of the last sync attempt
type SyncStatus int

const (
	SyncIdle SyncStatus = iota
	Syncing
	SyncSuccess
	SyncError
)

// String method for SyncStatus enum
func (s SyncStatus) String() string {
	switch s {
	case SyncIdle:
		return "Idle"
	case Syncing:
		return "Syncing"
	case SyncSuccess:
		return "Success"
	case SyncError:
		return "Error"
	default:
		return "Unknown"
	}
}

// SyncState is a point-in-time copy of the sync status
type SyncState struct {
	Status    SyncStatus `json:"status"`
	LastError string     `json:"lastError,omitempty"`
	LastSync  time.Time  `json:"lastSync,omitempty"`
}

// SyncService mirrors the local store to a single remote document.
// Failures end in SyncError and never reach the ledger.
type SyncService struct {
	store     repositories.Store
	transport Transport
	events    events.EventStore
	logger    logrus.FieldLogger

	run   sync.Mutex
	mu    sync.RWMutex
	state SyncState
}

// NewSyncService creates a sync service. A nil transport disables sync:
// Push is a no-op and Pull fails with ErrSyncNotConfigured.
func NewSyncService(
	store repositories.Store,
	transport Transport,
	eventStore events.EventStore,
	logger logrus.FieldLogger,
) *SyncService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &SyncService{
		store:     store,
		transport: transport,
		events:    eventStore,
		logger:    logger,
	}
}

// Verify interface compliance
var _ events.Pusher = (*SyncService)(nil)

// Enabled reports whether a remote is configured
func (s *SyncService) Enabled() bool {
	return s.transport != nil
}

// State returns the current sync status
func (s *SyncService) State() SyncState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *SyncService) setState(status SyncStatus, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Status = status
	switch status {
	case SyncSuccess:
		s.state.LastError = ""
		s.state.LastSync = time.Now()
	case SyncError:
		s.state.LastError = err.Error()
	}
}

// Push uploads a snapshot of the local store, replacing the remote copy
func (s *SyncService) Push(ctx context.Context) error {
	if s.transport == nil {
		return nil
	}
	s.run.Lock()
	defer s.run.Unlock()

	s.setState(Syncing, nil)
	data, err := s.store.Snapshot(ctx)
	if err == nil {
		err = s.transport.Push(ctx, data)
	}
	if err != nil {
		s.setState(SyncError, err)
		s.logger.WithError(err).Warn("sync push failed")
		return fmt.Errorf("sync push: %w", err)
	}

	s.setState(SyncSuccess, nil)
	s.logger.WithFields(logrus.Fields{
		"records": len(data.Records),
		"orders":  len(data.Orders),
	}).Debug("sync push complete")
	return nil
}

// Pull downloads the remote copy and replaces the local store with it.
// Last write wins; there is no merge.
func (s *SyncService) Pull(ctx context.Context) (*entities.Dataset, error) {
	if s.transport == nil {
		return nil, ErrSyncNotConfigured
	}
	s.run.Lock()
	defer s.run.Unlock()

	s.setState(Syncing, nil)
	data, err := s.transport.Pull(ctx)
	if err == nil {
		err = s.store.Replace(ctx, data)
	}
	if err != nil {
		s.setState(SyncError, err)
		s.logger.WithError(err).Warn("sync pull failed")
		return nil, fmt.Errorf("sync pull: %w", err)
	}

	s.setState(SyncSuccess, nil)
	if s.events != nil {
		s.events.AppendEvent(events.DatasetStream, events.NewEvent(
			events.DatasetReplacedEvent,
			events.DatasetStream,
			events.DatasetReplaced{Source: events.SourcePull, Records: len(data.Records), Orders: len(data.Orders)},
		))
	}
	return data, nil
}
