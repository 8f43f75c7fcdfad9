package codec

// proxHeaderFixedLen: ref lat, lon, alt y dist (8B cada uno) + flags (4B).
const proxHeaderFixedLen = 4*float64Size + int32Size

// ProximityChange es el encuentro de un track de referencia con otro track.
//
// Wire: [text ref_id][8B ref_lat][8B ref_lon][8B ref_alt][8B dist][4B flags][Track]
type ProximityChange struct {
	RefID     string  `json:"ref_id"`
	RefLatDeg float64 `json:"ref_lat_deg"`
	RefLonDeg float64 `json:"ref_lon_deg"`
	RefAltM   float64 `json:"ref_alt_m"`
	DistM     float64 `json:"dist_m"`
	Flags     int32   `json:"flags"`
	Proximity Track   `json:"proximity"`
}

func (p ProximityChange) headerLen() int {
	return lenPrefixSize + len(p.RefID) + proxHeaderFixedLen
}

// EncodedLen incluye la cabecera y el track embebido.
func (p ProximityChange) EncodedLen() int {
	return p.headerLen() + p.Proximity.EncodedLen()
}

// EncodeProximity valida el tamaño combinado (cabecera + track) antes de
// escribir: o se escribe el registro entero o no se escribe nada.
func EncodeProximity(db *DataBuf, pos int, p ProximityChange) (int, error) {
	if len(p.RefID) > maxStringLen || len(p.Proximity.ID) > maxStringLen {
		return pos, ErrStringTooLong
	}
	if !db.fits(pos, p.EncodedLen()) {
		return pos, ErrInsufficientSpace
	}
	w := fieldWriter{db: db, p: pos}
	w.str(p.RefID)
	w.f64(p.RefLatDeg)
	w.f64(p.RefLonDeg)
	w.f64(p.RefAltM)
	w.f64(p.DistM)
	w.i32(p.Flags)
	if w.err != nil {
		return pos, w.err
	}
	end, err := EncodeTrack(db, w.p, p.Proximity)
	if err != nil {
		return pos, err
	}
	return end, nil
}

// DecodeProximity lee la cabecera y luego el track embebido. maxRefLen y
// maxProxLen truncan los ids igual que DecodeTrack; un valor <= 0 (incluido
// 0) no limita y devuelve el id completo.
func DecodeProximity(db *DataBuf, pos int, maxRefLen, maxProxLen int) (ProximityChange, int, error) {
	r := fieldReader{db: db, p: pos}
	p := ProximityChange{
		RefID:     r.str(maxRefLen),
		RefLatDeg: r.f64(),
		RefLonDeg: r.f64(),
		RefAltM:   r.f64(),
		DistM:     r.f64(),
		Flags:     r.i32(),
	}
	if r.err != nil {
		return ProximityChange{}, pos, r.err
	}
	t, end, err := DecodeTrack(db, r.p, maxProxLen)
	if err != nil {
		return ProximityChange{}, pos, err
	}
	p.Proximity = t
	return p, end, nil
}
