package codec

import (
	"errors"
	"reflect"
	"testing"
)

func TestTrackMsgRoundTrip(t *testing.T) {
	tracks := []Track{sampleTrack(), {ID: "T2", Time: 2000, LatDeg: 1.5}}
	db := NewDataBuf(TrackMsgLen(tracks))

	pos, err := EncodeTrackMsg(db, 0, tracks)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if pos != 6+50+50 {
		t.Fatalf("expected pos 106, got %d", pos)
	}

	msg, end, err := DecodeMessage(db, 0, 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if end != pos || msg.Type != MsgTypeTrack || msg.Len() != 2 {
		t.Fatalf("unexpected message %+v end=%d", msg, end)
	}
	if !reflect.DeepEqual(msg.Tracks, tracks) {
		t.Fatalf("tracks mismatch: %+v", msg.Tracks)
	}
}

func TestProximityMsgRoundTrip(t *testing.T) {
	proxs := []ProximityChange{sampleProximity()}
	db := NewDataBuf(256)

	pos, err := EncodeProximityMsg(db, 0, proxs)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	msg, end, err := DecodeMessage(db, 0, 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if end != pos || msg.Type != MsgTypeProximity {
		t.Fatalf("unexpected message %+v end=%d pos=%d", msg, end, pos)
	}
	if !reflect.DeepEqual(msg.Proximities, proxs) {
		t.Fatalf("proximities mismatch: %+v", msg.Proximities)
	}
}

func TestEmptyTrackMsg(t *testing.T) {
	db := NewDataBuf(6)
	pos, err := EncodeTrackMsg(db, 0, nil)
	if err != nil || pos != 6 {
		t.Fatalf("encode empty: pos=%d err=%v", pos, err)
	}
	msg, _, err := DecodeMessage(db, 0, 0)
	if err != nil {
		t.Fatalf("decode empty: %v", err)
	}
	if msg.Len() != 0 {
		t.Fatalf("expected no records, got %d", msg.Len())
	}
}

func TestEncodeTrackMsgInsufficientSpace(t *testing.T) {
	tracks := []Track{sampleTrack(), sampleTrack()}
	db := NewDataBuf(TrackMsgLen(tracks) - 1)
	pos, err := EncodeTrackMsg(db, 0, tracks)
	if !errors.Is(err, ErrInsufficientSpace) || pos != 0 {
		t.Fatalf("expected ErrInsufficientSpace at 0, got pos=%d err=%v", pos, err)
	}
	for _, b := range db.Bytes() {
		if b != 0 {
			t.Fatalf("buffer written on failed message encode")
		}
	}
}

func TestDecodeMessageUnknownType(t *testing.T) {
	db := NewDataBuf(6)
	if _, err := db.PutInt32(0, 7); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, _, err := DecodeMessage(db, 0, 0); !errors.Is(err, ErrUnknownMsgType) {
		t.Fatalf("expected ErrUnknownMsgType, got %v", err)
	}
}

func TestDecodeMessageTruncated(t *testing.T) {
	tracks := []Track{sampleTrack()}
	db := NewDataBuf(TrackMsgLen(tracks))
	if _, err := EncodeTrackMsg(db, 0, tracks); err != nil {
		t.Fatalf("encode: %v", err)
	}
	short := WrapDataBuf(db.Bytes()[:db.Capacity()-3])
	if _, _, err := DecodeMessage(short, 0, 0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestDecodeMessageNegativeCount(t *testing.T) {
	db := NewDataBuf(6)
	p, _ := db.PutInt32(0, MsgTypeTrack)
	if _, err := db.PutInt16(p, -1); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, _, err := DecodeMessage(db, 0, 0); !errors.Is(err, ErrTooManyRecords) {
		t.Fatalf("expected ErrTooManyRecords, got %v", err)
	}
}
