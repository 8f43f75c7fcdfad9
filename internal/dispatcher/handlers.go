package dispatcher

import (
	"context"
	"log/slog"
	"time"

	"track-svr/internal/codec"
	"track-svr/internal/observability"
	"track-svr/internal/pipeline"
)

type TrackStore interface {
	SaveTrack(ctx context.Context, tr *pipeline.TrackingObject) error
	SaveProximity(ctx context.Context, p *pipeline.ProximityObject) error
}

type Forwarder interface {
	SendTrack(ctx context.Context, t codec.Track) error
	SendProximity(ctx context.Context, p codec.ProximityChange) error
}

// Sinks reparte cada registro decodificado a store, uplink y forwarder.
// Cualquiera puede ser nil.
type Sinks struct {
	Store       TrackStore
	Forwarder   Forwarder
	OnTrack     func(*pipeline.TrackingObject)
	OnProximity func(*pipeline.ProximityObject)

	StaleAfter time.Duration
	Now        func() time.Time
	Logger     *slog.Logger
}

func (s *Sinks) Register(d *Dispatcher) {
	d.Register(codec.MsgTypeTrack, s.HandleTracks)
	d.Register(codec.MsgTypeProximity, s.HandleProximities)
}

func (s *Sinks) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Los errores de store y forwarder se registran pero no cortan el mensaje:
// el resto de los registros se sigue procesando.
func (s *Sinks) HandleTracks(ctx context.Context, source string, msg codec.Message) error {
	now := s.now()
	for _, t := range msg.Tracks {
		tr := pipeline.BuildTracking(t, now, s.StaleAfter)
		if s.Store != nil {
			if err := s.Store.SaveTrack(ctx, tr); err != nil {
				s.log().Error("save track failed", "id", t.ID, "err", err)
			}
		}
		if s.OnTrack != nil {
			s.OnTrack(tr)
		}
		if s.Forwarder != nil {
			if err := s.Forwarder.SendTrack(ctx, t); err != nil {
				observability.ForwardErrors.Inc()
				s.log().Warn("forward track failed", "id", t.ID, "err", err)
			}
		}
	}
	s.log().Debug("tracks processed", "source", source, "count", len(msg.Tracks))
	return nil
}

func (s *Sinks) HandleProximities(ctx context.Context, source string, msg codec.Message) error {
	now := s.now()
	for _, p := range msg.Proximities {
		po := pipeline.BuildProximity(p, now, s.StaleAfter)
		if s.Store != nil {
			if err := s.Store.SaveProximity(ctx, po); err != nil {
				s.log().Error("save proximity failed", "ref_id", p.RefID, "id", p.Proximity.ID, "err", err)
			}
		}
		if s.OnProximity != nil {
			s.OnProximity(po)
		}
		if s.Forwarder != nil {
			if err := s.Forwarder.SendProximity(ctx, p); err != nil {
				observability.ForwardErrors.Inc()
				s.log().Warn("forward proximity failed", "ref_id", p.RefID, "err", err)
			}
		}
	}
	s.log().Debug("proximities processed", "source", source, "count", len(msg.Proximities))
	return nil
}

func (s *Sinks) log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
