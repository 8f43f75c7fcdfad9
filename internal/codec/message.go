package codec

import "math"

// Tipos de mensaje del SimpleTrackProtocol.
const (
	MsgTypeTrack     int32 = 1
	MsgTypeProximity int32 = 2
)

// msgHeaderLen: msg_type (4B) + n_records (2B).
const msgHeaderLen = int32Size + int16Size

const maxRecords = math.MaxInt16

// Message es un sobre decodificado; sólo uno de Tracks/Proximities tiene datos
// según Type.
type Message struct {
	Type        int32
	Tracks      []Track
	Proximities []ProximityChange
}

func (m Message) Len() int {
	if m.Type == MsgTypeProximity {
		return len(m.Proximities)
	}
	return len(m.Tracks)
}

func TrackMsgLen(tracks []Track) int {
	n := msgHeaderLen
	for _, t := range tracks {
		n += t.EncodedLen()
	}
	return n
}

func ProximityMsgLen(proxs []ProximityChange) int {
	n := msgHeaderLen
	for _, p := range proxs {
		n += p.EncodedLen()
	}
	return n
}

// EncodeTrackMsg escribe [1][n][tracks...]. El tamaño del mensaje completo se
// valida antes de escribir.
func EncodeTrackMsg(db *DataBuf, pos int, tracks []Track) (int, error) {
	if len(tracks) > maxRecords {
		return pos, ErrTooManyRecords
	}
	if !db.fits(pos, TrackMsgLen(tracks)) {
		return pos, ErrInsufficientSpace
	}
	w := fieldWriter{db: db, p: pos}
	w.i32(MsgTypeTrack)
	w.i16(int16(len(tracks)))
	for _, t := range tracks {
		if w.err != nil {
			break
		}
		w.p, w.err = EncodeTrack(db, w.p, t)
	}
	if w.err != nil {
		return pos, w.err
	}
	return w.p, nil
}

func EncodeProximityMsg(db *DataBuf, pos int, proxs []ProximityChange) (int, error) {
	if len(proxs) > maxRecords {
		return pos, ErrTooManyRecords
	}
	if !db.fits(pos, ProximityMsgLen(proxs)) {
		return pos, ErrInsufficientSpace
	}
	w := fieldWriter{db: db, p: pos}
	w.i32(MsgTypeProximity)
	w.i16(int16(len(proxs)))
	for _, p := range proxs {
		if w.err != nil {
			break
		}
		w.p, w.err = EncodeProximity(db, w.p, p)
	}
	if w.err != nil {
		return pos, w.err
	}
	return w.p, nil
}

// DecodeMessage lee un sobre completo desde pos. maxIDLen se aplica a todos
// los ids del mensaje.
func DecodeMessage(db *DataBuf, pos int, maxIDLen int) (Message, int, error) {
	r := fieldReader{db: db, p: pos}
	msgType := r.i32()
	n := r.i16()
	if r.err != nil {
		return Message{}, pos, r.err
	}
	if n < 0 {
		return Message{}, pos, ErrTooManyRecords
	}

	msg := Message{Type: msgType}
	p := r.p
	switch msgType {
	case MsgTypeTrack:
		msg.Tracks = make([]Track, 0, n)
		for i := 0; i < int(n); i++ {
			t, next, err := DecodeTrack(db, p, maxIDLen)
			if err != nil {
				return Message{}, pos, err
			}
			msg.Tracks = append(msg.Tracks, t)
			p = next
		}
	case MsgTypeProximity:
		msg.Proximities = make([]ProximityChange, 0, n)
		for i := 0; i < int(n); i++ {
			pc, next, err := DecodeProximity(db, p, maxIDLen, maxIDLen)
			if err != nil {
				return Message{}, pos, err
			}
			msg.Proximities = append(msg.Proximities, pc)
			p = next
		}
	default:
		return Message{}, pos, ErrUnknownMsgType
	}
	return msg, p, nil
}
