package dashboard

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// Observer is told about every settled acquisition.
type Observer interface {
	AcquisitionSucceeded(s *Snapshot, took time.Duration)
	AcquisitionFailed(err error, took time.Duration)
}

type Option func(*Store)

func WithObserver(o Observer) Option {
	return func(s *Store) { s.observer = o }
}

// Store holds the last good snapshot. The snapshot is swapped as a whole, so
// readers see either the previous acquisition or the new one, never a mix.
type Store struct {
	loader   *Loader
	observer Observer
	current  atomic.Pointer[Snapshot]

	mu   sync.Mutex
	subs []func(*Snapshot)
}

func NewStore(loader *Loader, opts ...Option) *Store {
	s := &Store{loader: loader}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns the last good snapshot, or nil while still loading.
func (s *Store) Current() *Snapshot { return s.current.Load() }

func (s *Store) Loading() bool { return s.current.Load() == nil }

// Subscribe registers fn to run after each successful refresh.
func (s *Store) Subscribe(fn func(*Snapshot)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Refresh performs one joint acquisition. Failures are logged and dropped; the
// store keeps whatever state it had. It reports whether a new snapshot landed.
func (s *Store) Refresh(ctx context.Context) bool {
	start := time.Now()
	snap, err := s.loader.Load(ctx)
	took := time.Since(start)

	if err != nil {
		ev := log.Error().Err(err).Dur("took", took)
		var acqErr *AcquisitionError
		if errors.As(err, &acqErr) {
			ev = ev.Str("acquisition_id", acqErr.ID).Strs("failed", acqErr.Resources())
		}
		ev.Msg("dashboard acquisition failed")
		if s.observer != nil {
			s.observer.AcquisitionFailed(err, took)
		}
		return false
	}

	s.current.Store(snap)
	log.Info().
		Str("acquisition_id", snap.ID).
		Int("machines", len(snap.Machines)).
		Int("logs", len(snap.Logs)).
		Int("improvement_percent", snap.Comparison.Improvement.Percent).
		Dur("took", took).
		Msg("dashboard snapshot updated")

	if s.observer != nil {
		s.observer.AcquisitionSucceeded(snap, took)
	}

	s.mu.Lock()
	subs := slices.Clone(s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		notify(fn, snap)
	}
	return true
}

// notify runs one subscriber; a panic is logged so the rest still run.
func notify(fn func(*Snapshot), snap *Snapshot) {
	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic", p).Str("acquisition_id", snap.ID).Msg("snapshot subscriber panicked")
		}
	}()
	fn(snap)
}
