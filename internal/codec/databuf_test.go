package codec

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestDataBufScalars(t *testing.T) {
	db := NewDataBuf(22)
	p, err := db.PutInt32(0, -5)
	if err != nil {
		t.Fatalf("put int32: %v", err)
	}
	p, err = db.PutInt64(p, math.MinInt64)
	if err != nil {
		t.Fatalf("put int64: %v", err)
	}
	p, err = db.PutFloat64(p, math.Inf(-1))
	if err != nil {
		t.Fatalf("put float64: %v", err)
	}
	p, err = db.PutInt16(p, -2)
	if err != nil || p != 22 {
		t.Fatalf("put int16: p=%d err=%v", p, err)
	}

	i32, p, _ := db.GetInt32(0)
	i64, p, _ := db.GetInt64(p)
	f64, p, _ := db.GetFloat64(p)
	i16, p, err := db.GetInt16(p)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if i32 != -5 || i64 != math.MinInt64 || !math.IsInf(f64, -1) || i16 != -2 || p != 22 {
		t.Fatalf("scalars mismatch: %d %d %v %d %d", i32, i64, f64, i16, p)
	}
}

func TestDataBufBigEndianLayout(t *testing.T) {
	db := NewDataBuf(6)
	if _, err := db.PutString(0, "ab"); err != nil {
		t.Fatalf("put: %v", err)
	}
	want := []byte{0x00, 0x02, 'a', 'b', 0, 0}
	for i, b := range want {
		if db.Bytes()[i] != b {
			t.Fatalf("byte %d: got %#x want %#x", i, db.Bytes()[i], b)
		}
	}
}

func TestDataBufStringLimits(t *testing.T) {
	db := NewDataBuf(70000)
	if _, err := db.PutString(0, strings.Repeat("x", 65536)); !errors.Is(err, ErrStringTooLong) {
		t.Fatalf("expected ErrStringTooLong, got %v", err)
	}
	if _, err := NewDataBuf(3).PutString(0, "ab"); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestDataBufGetStringBadPrefix(t *testing.T) {
	db := WrapDataBuf([]byte{0x00, 0x09, 'a'})
	if _, _, err := db.GetString(0, 0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestDataBufOutOfRange(t *testing.T) {
	db := NewDataBuf(4)
	if _, err := db.PutInt64(0, 1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if _, _, err := db.GetInt32(1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if _, _, err := db.GetFloat64(-1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}
