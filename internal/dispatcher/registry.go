package dispatcher

import (
	"context"
	"sync"

	"track-svr/internal/codec"
)

// Handler procesa un mensaje ya decodificado. source identifica la conexión
// de origen (remote addr).
type Handler func(ctx context.Context, source string, msg codec.Message) error

type registry struct {
	mu       sync.RWMutex
	handlers map[int32]Handler
}

func (r *registry) register(msgType int32, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.handlers == nil {
		r.handlers = make(map[int32]Handler)
	}
	r.handlers[msgType] = h
}

func (r *registry) get(msgType int32) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[msgType]
	return h, ok
}
