package main

import (
	"flag"
	"fmt"
	"math"
	"net"
	"os"
	"time"

	"track-svr/internal/codec"
	"track-svr/internal/observability"
	"track-svr/internal/server"
)

// trackgen simula n tracks volando en círculo alrededor de un punto y manda
// un TrackMsg por tick; cuando dos tracks quedan a menos de -prox metros manda
// además un ProximityMsg.
func main() {
	addr := flag.String("addr", "localhost:8001", "track-svr TCP address")
	n := flag.Int("n", 4, "number of simulated tracks")
	interval := flag.Duration("interval", time.Second, "update interval")
	ticks := flag.Int("ticks", 0, "stop after this many updates (0 = forever)")
	prox := flag.Float64("prox", 5000, "proximity threshold in meters")
	flag.Parse()

	logger := observability.NewLogger(os.Getenv("LOG_LEVEL"))

	conn, err := net.Dial("tcp", *addr)
	if err != nil {
		logger.Error("dial failed", "addr", *addr, "error", err)
		os.Exit(1)
	}
	defer conn.Close()
	fc := server.NewFrameConn(conn)

	sim := newSimulation(*n, 37.62, -122.38)
	near := map[string]bool{}
	for tick := 0; *ticks == 0 || tick < *ticks; tick++ {
		now := time.Now()
		tracks := sim.step(now, interval.Seconds())
		proxs := proximityChanges(tracks, *prox, near)

		db := codec.NewDataBuf(codec.TrackMsgLen(tracks) + codec.ProximityMsgLen(proxs))
		p, err := codec.EncodeTrackMsg(db, 0, tracks)
		if err == nil && len(proxs) > 0 {
			p, err = codec.EncodeProximityMsg(db, p, proxs)
		}
		if err != nil {
			logger.Error("encode failed", "error", err)
			os.Exit(1)
		}
		if err := fc.WriteFrame(codec.SealFrame(db.Bytes()[:p])); err != nil {
			logger.Error("write failed", "error", err)
			os.Exit(1)
		}
		logger.Info("sent", "tracks", len(tracks), "proximities", len(proxs), "bytes", p)
		time.Sleep(*interval)
	}
}

type simTrack struct {
	id      string
	radiusM float64
	angle   float64 // rad
	omega   float64 // rad/s
	altM    float64
}

type simulation struct {
	lat0, lon0 float64
	tracks     []simTrack
}

func newSimulation(n int, lat0, lon0 float64) *simulation {
	s := &simulation{lat0: lat0, lon0: lon0}
	for i := 0; i < n; i++ {
		s.tracks = append(s.tracks, simTrack{
			id:      fmt.Sprintf("SIM%03d", i+1),
			radiusM: 4000 + float64(i)*1500,
			angle:   float64(i) * math.Pi / 3,
			omega:   0.01 + 0.002*float64(i),
			altM:    1000 + 300*float64(i),
		})
	}
	return s
}

const earthRadiusM = 6371000.0

func (s *simulation) step(now time.Time, dt float64) []codec.Track {
	out := make([]codec.Track, 0, len(s.tracks))
	for i := range s.tracks {
		st := &s.tracks[i]
		st.angle += st.omega * dt
		north := st.radiusM * math.Cos(st.angle)
		east := st.radiusM * math.Sin(st.angle)
		lat := s.lat0 + north/earthRadiusM*180/math.Pi
		lon := s.lon0 + east/(earthRadiusM*math.Cos(s.lat0*math.Pi/180))*180/math.Pi
		// rumbo tangente al círculo (sentido horario visto desde arriba)
		hdg := math.Mod(st.angle*180/math.Pi+90, 360)
		out = append(out, codec.Track{
			ID:         st.id,
			Time:       now.UnixMilli(),
			LatDeg:     lat,
			LonDeg:     lon,
			AltM:       st.altM,
			HeadingDeg: hdg,
			SpeedMSec:  st.omega * st.radiusM,
		})
	}
	return out
}

// proximityChanges compara todos los pares contra el umbral y emite
// New/Change/Drop según el estado anterior guardado en near.
func proximityChanges(tracks []codec.Track, threshold float64, near map[string]bool) []codec.ProximityChange {
	var out []codec.ProximityChange
	for i := range tracks {
		for j := range tracks {
			if i == j {
				continue
			}
			ref, other := tracks[i], tracks[j]
			key := ref.ID + "/" + other.ID
			d := distanceM(ref, other)
			was := near[key]
			var flags int32
			switch {
			case d <= threshold && !was:
				flags = codec.FlagNew
				near[key] = true
			case d <= threshold:
				flags = codec.FlagChange
			case was:
				flags = codec.FlagDrop
				delete(near, key)
			default:
				continue
			}
			out = append(out, codec.ProximityChange{
				RefID:     ref.ID,
				RefLatDeg: ref.LatDeg,
				RefLonDeg: ref.LonDeg,
				RefAltM:   ref.AltM,
				DistM:     d,
				Flags:     flags,
				Proximity: other,
			})
		}
	}
	return out
}

// distanceM: haversine horizontal + diferencia de altitud.
func distanceM(a, b codec.Track) float64 {
	toRad := math.Pi / 180
	dLat := (b.LatDeg - a.LatDeg) * toRad
	dLon := (b.LonDeg - a.LonDeg) * toRad
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.LatDeg*toRad)*math.Cos(b.LatDeg*toRad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	horiz := 2 * earthRadiusM * math.Asin(math.Sqrt(h))
	dAlt := b.AltM - a.AltM
	return math.Sqrt(horiz*horiz + dAlt*dAlt)
}
