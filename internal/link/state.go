package link

// EventKind identifica el tipo de línea NDJSON enviada al proxy.
type EventKind string

const (
	EventTrackUpdate     EventKind = "track_update"
	EventProximityChange EventKind = "proximity_change"
)
