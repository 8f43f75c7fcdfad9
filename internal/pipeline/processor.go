package pipeline

import (
	"time"

	"track-svr/internal/codec"
)

func coordsValid(lat, lon float64) bool {
	if lat == 0 && lon == 0 {
		return false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return false
	}
	return true
}

func CalcFix(lat, lon float64) int {
	if coordsValid(lat, lon) {
		return 1
	}
	return 0
}

// DecideMsgType marca como stale (0) los tracks más viejos que staleAfter.
func DecideMsgType(ts, now time.Time, staleAfter time.Duration) int {
	if staleAfter > 0 && !ts.IsZero() && now.Sub(ts) > staleAfter {
		return 0
	}
	return 1
}

func BuildTracking(t codec.Track, now time.Time, staleAfter time.Duration) *TrackingObject {
	ts := t.Timestamp()
	return &TrackingObject{
		ID:       t.ID,
		Datetime: ts.UTC().Format(time.RFC3339Nano),
		TimeMs:   t.Time,
		Lat:      t.LatDeg,
		Lon:      t.LonDeg,
		Alt:      t.AltM,
		Hdg:      t.HeadingDeg,
		Spd:      t.SpeedMSec,
		MsgType:  DecideMsgType(ts, now, staleAfter),
		Fix:      CalcFix(t.LatDeg, t.LonDeg),
	}
}

func BuildProximity(p codec.ProximityChange, now time.Time, staleAfter time.Duration) *ProximityObject {
	return &ProximityObject{
		RefID:  p.RefID,
		RefLat: p.RefLatDeg,
		RefLon: p.RefLonDeg,
		RefAlt: p.RefAltM,
		Dist:   p.DistM,
		Flags:  p.Flags,
		Events: codec.FlagNames(p.Flags),
		Track:  *BuildTracking(p.Proximity, now, staleAfter),
	}
}
