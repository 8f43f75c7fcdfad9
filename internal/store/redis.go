package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"track-svr/internal/observability"
	"track-svr/internal/pipeline"
)

// Store guarda el último estado conocido de cada track y los pares de
// proximidad activos por track de referencia.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func InitRedis(ctx context.Context, addr string, db int, ttl time.Duration) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Store{rdb: rdb, ttl: ttl}, nil
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func trackKey(id string) string { return "trk:" + id }

func proxIndexKey(refID string) string { return "proxidx:" + refID }

func proxKey(refID, id string) string { return "prox:" + refID + ":" + id }

func (s *Store) SaveTrack(ctx context.Context, tr *pipeline.TrackingObject) error {
	b, err := json.Marshal(tr)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, trackKey(tr.ID), b, s.ttl).Err(); err != nil {
		observability.RedisSetErrors.Inc()
		return fmt.Errorf("redis SET %s: %w", trackKey(tr.ID), err)
	}
	return nil
}

// GetTrack devuelve (nil, nil) si el track no existe o expiró.
func (s *Store) GetTrack(ctx context.Context, id string) (*pipeline.TrackingObject, error) {
	val, err := s.rdb.Get(ctx, trackKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var tr pipeline.TrackingObject
	if err := json.Unmarshal(val, &tr); err != nil {
		return nil, err
	}
	return &tr, nil
}

// SaveProximity registra el par ref/proximity; con FlagDrop lo elimina.
func (s *Store) SaveProximity(ctx context.Context, p *pipeline.ProximityObject) error {
	idx := proxIndexKey(p.RefID)
	key := proxKey(p.RefID, p.Track.ID)

	pipe := s.rdb.TxPipeline()
	if p.Dropped() {
		pipe.Del(ctx, key)
		pipe.SRem(ctx, idx, p.Track.ID)
	} else {
		b, err := json.Marshal(p)
		if err != nil {
			return err
		}
		pipe.Set(ctx, key, b, s.ttl)
		pipe.SAdd(ctx, idx, p.Track.ID)
		pipe.Expire(ctx, idx, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		observability.RedisSetErrors.Inc()
		return fmt.Errorf("redis proximity %s: %w", key, err)
	}
	return nil
}

func (s *Store) GetProximities(ctx context.Context, refID string) ([]pipeline.ProximityObject, error) {
	ids, err := s.rdb.SMembers(ctx, proxIndexKey(refID)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]pipeline.ProximityObject, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = proxKey(refID, id)
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for _, v := range vals {
		str, ok := v.(string)
		if !ok {
			// expirado entre SMEMBERS y MGET
			continue
		}
		var p pipeline.ProximityObject
		if err := json.Unmarshal([]byte(str), &p); err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
