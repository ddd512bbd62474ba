// Package core implements the recruiting ledger: entity operations, the
// relational integrity rules the document store cannot enforce on its own,
// relationship hydration and the derived aggregate views.
package core

import (
	"context"
	"errors"
	"recruitledger/pkg/domain"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Service exposes transactional CRUD and query operations over a persistent store.
// Mutations are serialised by a single write lock; reads go straight to the store.
type Service struct {
	store   domain.PersistentStore
	logger  *zap.Logger
	metrics MetricsRecorder
	now     func() time.Time
	newID   func() string

	writeMu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the structured logger. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithMetrics installs a recorder observing every service operation.
func WithMetrics(recorder MetricsRecorder) Option {
	return func(s *Service) {
		if recorder != nil {
			s.metrics = recorder
		}
	}
}

// NewService constructs a service over an initialised store.
func NewService(store domain.PersistentStore, opts ...Option) *Service {
	s := &Service{
		store:   store,
		logger:  zap.NewNop(),
		metrics: noopMetrics{},
		now:     domain.Now,
		newID:   domain.NewRecordID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying storage implementation.
func (s *Service) Store() domain.PersistentStore {
	return s.store
}

func (s *Service) newBase() domain.Base {
	now := s.now()
	return domain.Base{ID: s.newID(), CreatedAt: now, UpdatedAt: now}
}

// touch refreshes UpdatedAt, keeping it strictly after the previous value
// even when the clock has not moved.
func (s *Service) touch(b *domain.Base) {
	now := s.now()
	if !now.After(b.UpdatedAt) {
		now = b.UpdatedAt.Add(time.Millisecond)
	}
	b.UpdatedAt = now
}

// mutate runs fn in a store transaction under the write lock.
func (s *Service) mutate(ctx context.Context, op string, fn func(domain.Transaction) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.observe(ctx, op, func() error {
		return s.store.RunInTransaction(ctx, fn)
	})
}

// read runs fn against the store without taking the write lock.
func (s *Service) read(ctx context.Context, op string, fn func(domain.Reader) error) error {
	return s.observe(ctx, op, func() error { return fn(s.store) })
}

func (s *Service) observe(ctx context.Context, op string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	s.metrics.Observe(ctx, op, err == nil, elapsed)
	switch {
	case err == nil:
		s.logger.Debug("operation completed", zap.String("operation", op), zap.Duration("duration", elapsed))
	case isRejection(err):
		s.logger.Info("operation rejected", zap.String("operation", op), zap.Error(err))
	default:
		s.logger.Error("operation failed", zap.String("operation", op), zap.Duration("duration", elapsed), zap.Error(err))
	}
	return err
}

// isRejection reports errors caused by caller input rather than the backend.
func isRejection(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrReference) ||
		errors.Is(err, domain.ErrConflict)
}
