package codec

import "time"

// trackFixedLen: time (8B) + lat, lon, alt, heading, speed (8B cada uno).
const trackFixedLen = int64Size + 5*float64Size

// Track es un estado observado de un vehículo.
//
// Wire: [text id][8B time][8B lat][8B lon][8B alt][8B heading][8B speed]
type Track struct {
	ID         string  `json:"id"`
	Time       int64   `json:"time_msec"` // epoch ms
	LatDeg     float64 `json:"lat_deg"`
	LonDeg     float64 `json:"lon_deg"`
	AltM       float64 `json:"alt_m"`
	HeadingDeg float64 `json:"heading_deg"`
	SpeedMSec  float64 `json:"speed_m_sec"`
}

// EncodedLen es la longitud exacta en bytes del registro codificado.
func (t Track) EncodedLen() int {
	return lenPrefixSize + len(t.ID) + trackFixedLen
}

func (t Track) Timestamp() time.Time {
	return time.UnixMilli(t.Time)
}

// EncodeTrack escribe t en db a partir de pos y devuelve la nueva posición.
// Si el registro no cabe no se escribe nada y se devuelve pos con
// ErrInsufficientSpace.
func EncodeTrack(db *DataBuf, pos int, t Track) (int, error) {
	if len(t.ID) > maxStringLen {
		return pos, ErrStringTooLong
	}
	if !db.fits(pos, t.EncodedLen()) {
		return pos, ErrInsufficientSpace
	}
	w := fieldWriter{db: db, p: pos}
	writeTrackFields(&w, t)
	if w.err != nil {
		return pos, w.err
	}
	return w.p, nil
}

func writeTrackFields(w *fieldWriter, t Track) {
	w.str(t.ID)
	w.i64(t.Time)
	w.f64(t.LatDeg)
	w.f64(t.LonDeg)
	w.f64(t.AltM)
	w.f64(t.HeadingDeg)
	w.f64(t.SpeedMSec)
}

// DecodeTrack lee un Track desde pos. El id se trunca a maxIDLen bytes pero la
// posición avanza por la longitud original. maxIDLen <= 0 significa sin
// límite: pasar 0 devuelve el id completo, no un id vacío.
func DecodeTrack(db *DataBuf, pos int, maxIDLen int) (Track, int, error) {
	r := fieldReader{db: db, p: pos}
	t := readTrackFields(&r, maxIDLen)
	if r.err != nil {
		return Track{}, pos, r.err
	}
	return t, r.p, nil
}

func readTrackFields(r *fieldReader, maxIDLen int) Track {
	return Track{
		ID:         r.str(maxIDLen),
		Time:       r.i64(),
		LatDeg:     r.f64(),
		LonDeg:     r.f64(),
		AltM:       r.f64(),
		HeadingDeg: r.f64(),
		SpeedMSec:  r.f64(),
	}
}
