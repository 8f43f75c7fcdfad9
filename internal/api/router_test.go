package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"track-svr/internal/pipeline"
)

type fakeReader struct {
	tracks map[string]*pipeline.TrackingObject
	proxs  map[string][]pipeline.ProximityObject
	err    error
}

func (f *fakeReader) GetTrack(_ context.Context, id string) (*pipeline.TrackingObject, error) {
	return f.tracks[id], f.err
}

func (f *fakeReader) GetProximities(_ context.Context, ref string) ([]pipeline.ProximityObject, error) {
	return f.proxs[ref], f.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func do(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestGetTrack(t *testing.T) {
	r := NewRouter(&fakeReader{tracks: map[string]*pipeline.TrackingObject{
		"T1": {ID: "T1", Lat: 34.05, Lon: -118.25},
	}})

	w := do(r, "/tracks/T1")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var got pipeline.TrackingObject
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != "T1" || got.Lat != 34.05 {
		t.Fatalf("unexpected body %+v", got)
	}

	if w := do(r, "/tracks/missing"); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetProximities(t *testing.T) {
	r := NewRouter(&fakeReader{proxs: map[string][]pipeline.ProximityObject{
		"R1": {{RefID: "R1", Dist: 5, Track: pipeline.TrackingObject{ID: "T2"}}},
	}})
	w := do(r, "/proximities/R1")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var body struct {
		RefID       string                     `json:"ref_id"`
		Proximities []pipeline.ProximityObject `json:"proximities"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.RefID != "R1" || len(body.Proximities) != 1 || body.Proximities[0].Track.ID != "T2" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestReaderError(t *testing.T) {
	r := NewRouter(&fakeReader{err: errors.New("redis down")})
	if w := do(r, "/tracks/T1"); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	r := NewRouter(&fakeReader{})
	if w := do(r, "/healthz"); w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("healthz: %d %q", w.Code, w.Body.String())
	}
	if w := do(r, "/metrics"); w.Code != http.StatusOK {
		t.Fatalf("metrics: %d", w.Code)
	}
}
