package pipeline

import "track-svr/internal/codec"

type TrackingObject struct {
	ID       string `json:"id"`
	Datetime string `json:"dt"`
	TimeMs   int64  `json:"time_msec"`

	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Alt float64 `json:"alt_m"`
	Hdg float64 `json:"hdg"`
	Spd float64 `json:"spd"` // m/s

	MsgType int `json:"msg_type"` // 1=live, 0=stale
	Fix     int `json:"fix"`      // 1 si las coords son válidas
}

type ProximityObject struct {
	RefID  string   `json:"ref_id"`
	RefLat float64  `json:"ref_lat"`
	RefLon float64  `json:"ref_lon"`
	RefAlt float64  `json:"ref_alt_m"`
	Dist   float64  `json:"dist_m"`
	Flags  int32    `json:"flags"`
	Events []string `json:"events,omitempty"`

	Track TrackingObject `json:"track"`
}

// Dropped indica que el par dejó de estar en proximidad.
func (p *ProximityObject) Dropped() bool {
	return p.Flags&codec.FlagDrop != 0
}
