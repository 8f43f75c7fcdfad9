package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"track-svr/internal/codec"
	"track-svr/internal/pipeline"
)

const testTTL = time.Minute

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	st, err := InitRedis(context.Background(), mr.Addr(), 0, testTTL)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st, mr
}

func TestKeys(t *testing.T) {
	if got := trackKey("T1"); got != "trk:T1" {
		t.Fatalf("trackKey: %q", got)
	}
	if got := proxIndexKey("R1"); got != "proxidx:R1" {
		t.Fatalf("proxIndexKey: %q", got)
	}
	if got := proxKey("R1", "T1"); got != "prox:R1:T1" {
		t.Fatalf("proxKey: %q", got)
	}
}

func TestSaveTrackExpires(t *testing.T) {
	st, mr := newTestStore(t)
	ctx := context.Background()

	tr := &pipeline.TrackingObject{ID: "T1", Lat: 34.05, Lon: -118.25, MsgType: 1, Fix: 1}
	if err := st.SaveTrack(ctx, tr); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ttl := mr.TTL(trackKey("T1")); ttl != testTTL {
		t.Fatalf("expected ttl %v, got %v", testTTL, ttl)
	}

	got, err := st.GetTrack(ctx, "T1")
	if err != nil || got == nil || *got != *tr {
		t.Fatalf("get: %+v %v", got, err)
	}

	mr.FastForward(testTTL + time.Second)
	got, err = st.GetTrack(ctx, "T1")
	if err != nil || got != nil {
		t.Fatalf("expected (nil, nil) after ttl, got %+v %v", got, err)
	}
}

func TestGetTrackMissing(t *testing.T) {
	st, _ := newTestStore(t)
	got, err := st.GetTrack(context.Background(), "nope")
	if err != nil || got != nil {
		t.Fatalf("expected (nil, nil), got %+v %v", got, err)
	}
}

func proximity(ref, id string, dist float64, flags int32) *pipeline.ProximityObject {
	return &pipeline.ProximityObject{
		RefID: ref,
		Dist:  dist,
		Flags: flags,
		Track: pipeline.TrackingObject{ID: id},
	}
}

func TestProximityLifecycle(t *testing.T) {
	st, mr := newTestStore(t)
	ctx := context.Background()

	steps := []struct {
		name  string
		in    *pipeline.ProximityObject
		want  map[string]float64 // id -> dist
		inIdx []string
	}{
		{"new A", proximity("R1", "A", 100, codec.FlagNew), map[string]float64{"A": 100}, []string{"A"}},
		{"new B", proximity("R1", "B", 300, codec.FlagNew), map[string]float64{"A": 100, "B": 300}, []string{"A", "B"}},
		{"change A", proximity("R1", "A", 50, codec.FlagChange), map[string]float64{"A": 50, "B": 300}, []string{"A", "B"}},
		{"drop A", proximity("R1", "A", 900, codec.FlagDrop), map[string]float64{"B": 300}, []string{"B"}},
		{"drop B", proximity("R1", "B", 900, codec.FlagDrop), map[string]float64{}, nil},
	}

	for _, s := range steps {
		if err := st.SaveProximity(ctx, s.in); err != nil {
			t.Fatalf("%s: save: %v", s.name, err)
		}
		got, err := st.GetProximities(ctx, "R1")
		if err != nil {
			t.Fatalf("%s: get: %v", s.name, err)
		}
		if len(got) != len(s.want) {
			t.Fatalf("%s: expected %d proximities, got %+v", s.name, len(s.want), got)
		}
		for _, p := range got {
			if d, ok := s.want[p.Track.ID]; !ok || d != p.Dist {
				t.Fatalf("%s: unexpected proximity %+v", s.name, p)
			}
		}

		members, _ := mr.SMembers(proxIndexKey("R1"))
		if len(members) != len(s.inIdx) {
			t.Fatalf("%s: index members %v, want %v", s.name, members, s.inIdx)
		}
	}

	if mr.Exists(proxKey("R1", "A")) || mr.Exists(proxKey("R1", "B")) {
		t.Fatalf("dropped pair keys still present")
	}
	got, err := st.GetProximities(ctx, "R1")
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %+v %v", got, err)
	}
}

func TestGetProximitiesSkipsExpiredPairs(t *testing.T) {
	st, mr := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"A", "B"} {
		if err := st.SaveProximity(ctx, proximity("R1", id, 10, codec.FlagNew)); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	// la clave del par desaparece pero el índice todavía la lista
	mr.Del(proxKey("R1", "A"))

	got, err := st.GetProximities(ctx, "R1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 || got[0].Track.ID != "B" {
		t.Fatalf("expected only B, got %+v", got)
	}
}

func TestProximitiesExpireWithTTL(t *testing.T) {
	st, mr := newTestStore(t)
	ctx := context.Background()

	if err := st.SaveProximity(ctx, proximity("R1", "A", 10, codec.FlagNew)); err != nil {
		t.Fatalf("save: %v", err)
	}
	mr.FastForward(testTTL + time.Second)

	got, err := st.GetProximities(ctx, "R1")
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty list after ttl, got %+v %v", got, err)
	}
}
