package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/dashboard"
)

// Sink receives every successful snapshot.
type Sink interface {
	Name() string
	Handle(ctx context.Context, s *dashboard.Snapshot) error
}

type Services struct {
	sinks   []Sink
	timeout time.Duration
}

func New(timeout time.Duration, sinks ...Sink) *Services {
	return &Services{sinks: sinks, timeout: timeout}
}

func (s *Services) Enabled() []string {
	names := make([]string, len(s.sinks))
	for i, sink := range s.sinks {
		names[i] = sink.Name()
	}
	return names
}

// Dispatch hands snap to every sink in turn. Sink errors are logged and never
// affect the dashboard state.
func (s *Services) Dispatch(ctx context.Context, snap *dashboard.Snapshot) {
	for _, sink := range s.sinks {
		if err := s.deliver(ctx, sink, snap); err != nil {
			log.Error().Err(err).Str("sink", sink.Name()).Str("acquisition_id", snap.ID).Msg("snapshot sink failed")
			continue
		}
		log.Debug().Str("sink", sink.Name()).Str("acquisition_id", snap.ID).Msg("snapshot delivered")
	}
}

func (s *Services) deliver(ctx context.Context, sink Sink, snap *dashboard.Snapshot) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return sink.Handle(ctx, snap)
}

func encode(snap *dashboard.Snapshot) ([]byte, error) {
	return json.Marshal(snap)
}
