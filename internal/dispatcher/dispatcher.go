package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"track-svr/internal/codec"
	"track-svr/internal/observability"
)

var ErrNoHandler = errors.New("dispatcher: no handler for message type")

type Dispatcher struct {
	reg      registry
	maxIDLen int
	logger   *slog.Logger
}

func New(maxIDLen int, lg *slog.Logger) *Dispatcher {
	return &Dispatcher{
		maxIDLen: maxIDLen,
		logger:   lg.With("component", "dispatcher"),
	}
}

func (d *Dispatcher) Register(msgType int32, h Handler) {
	d.reg.register(msgType, h)
}

// ProcessIncoming decodifica todos los mensajes contenidos en payload (uno
// detrás de otro) y los entrega al handler de su tipo. Se detiene en el
// primer error.
func (d *Dispatcher) ProcessIncoming(ctx context.Context, source string, payload []byte) error {
	db := codec.WrapDataBuf(payload)
	for pos := 0; pos < len(payload); {
		start := time.Now()
		msg, next, err := codec.DecodeMessage(db, pos, d.maxIDLen)
		if err != nil {
			observability.DecodeErrors.Inc()
			d.logger.Warn("decode failed", "source", source, "pos", pos, "err", err)
			return fmt.Errorf("decode at %d: %w", pos, err)
		}
		observability.ObserveDecodeLatency(start)
		observability.RecordsDecoded.WithLabelValues(kindLabel(msg.Type)).Add(float64(msg.Len()))

		h, ok := d.reg.get(msg.Type)
		if !ok {
			d.logger.Warn("no handler", "source", source, "msg_type", msg.Type)
			return ErrNoHandler
		}
		if err := h(ctx, source, msg); err != nil {
			return err
		}
		pos = next
	}
	return nil
}

func kindLabel(msgType int32) string {
	switch msgType {
	case codec.MsgTypeTrack:
		return "track"
	case codec.MsgTypeProximity:
		return "proximity"
	default:
		return strconv.Itoa(int(msgType))
	}
}
