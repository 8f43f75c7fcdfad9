package codec

import (
	"encoding/binary"
	"math"
)

const (
	lenPrefixSize = 2
	int16Size     = 2
	int32Size     = 4
	int64Size     = 8
	float64Size   = 8

	maxStringLen = math.MaxUint16
)

// DataBuf es un buffer de capacidad fija con primitivas posicionales.
// Todos los escalares van en big-endian. Nunca crece: len(buf) es la capacidad.
type DataBuf struct {
	buf []byte
}

func NewDataBuf(capacity int) *DataBuf {
	return &DataBuf{buf: make([]byte, capacity)}
}

// WrapDataBuf usa b como almacenamiento (sin copiar).
func WrapDataBuf(b []byte) *DataBuf {
	return &DataBuf{buf: b}
}

func (db *DataBuf) Capacity() int { return len(db.buf) }

// Bytes devuelve el almacenamiento completo, no una copia.
func (db *DataBuf) Bytes() []byte { return db.buf }

// fits indica si n bytes caben a partir de pos.
func (db *DataBuf) fits(pos, n int) bool {
	return pos >= 0 && n >= 0 && pos <= len(db.buf)-n
}

func (db *DataBuf) PutString(pos int, s string) (int, error) {
	if len(s) > maxStringLen {
		return pos, ErrStringTooLong
	}
	if !db.fits(pos, lenPrefixSize+len(s)) {
		return pos, ErrOutOfRange
	}
	binary.BigEndian.PutUint16(db.buf[pos:], uint16(len(s)))
	p := pos + lenPrefixSize
	copy(db.buf[p:], s)
	return p + len(s), nil
}

func (db *DataBuf) PutInt32(pos int, v int32) (int, error) {
	if !db.fits(pos, int32Size) {
		return pos, ErrOutOfRange
	}
	binary.BigEndian.PutUint32(db.buf[pos:], uint32(v))
	return pos + int32Size, nil
}

func (db *DataBuf) PutInt16(pos int, v int16) (int, error) {
	if !db.fits(pos, int16Size) {
		return pos, ErrOutOfRange
	}
	binary.BigEndian.PutUint16(db.buf[pos:], uint16(v))
	return pos + int16Size, nil
}

func (db *DataBuf) PutInt64(pos int, v int64) (int, error) {
	if !db.fits(pos, int64Size) {
		return pos, ErrOutOfRange
	}
	binary.BigEndian.PutUint64(db.buf[pos:], uint64(v))
	return pos + int64Size, nil
}

func (db *DataBuf) PutFloat64(pos int, v float64) (int, error) {
	if !db.fits(pos, float64Size) {
		return pos, ErrOutOfRange
	}
	binary.BigEndian.PutUint64(db.buf[pos:], math.Float64bits(v))
	return pos + float64Size, nil
}

// GetString lee un texto con prefijo de longitud. Si maxLen > 0 y el texto es
// más largo, se trunca a maxLen bytes; la posición devuelta siempre salta el
// texto completo.
func (db *DataBuf) GetString(pos int, maxLen int) (string, int, error) {
	if !db.fits(pos, lenPrefixSize) {
		return "", pos, ErrOutOfRange
	}
	n := int(binary.BigEndian.Uint16(db.buf[pos:]))
	p := pos + lenPrefixSize
	if !db.fits(p, n) {
		return "", pos, ErrOutOfRange
	}
	keep := n
	if maxLen > 0 && keep > maxLen {
		keep = maxLen
	}
	return string(db.buf[p : p+keep]), p + n, nil
}

func (db *DataBuf) GetInt16(pos int) (int16, int, error) {
	if !db.fits(pos, int16Size) {
		return 0, pos, ErrOutOfRange
	}
	return int16(binary.BigEndian.Uint16(db.buf[pos:])), pos + int16Size, nil
}

func (db *DataBuf) GetInt32(pos int) (int32, int, error) {
	if !db.fits(pos, int32Size) {
		return 0, pos, ErrOutOfRange
	}
	return int32(binary.BigEndian.Uint32(db.buf[pos:])), pos + int32Size, nil
}

func (db *DataBuf) GetInt64(pos int) (int64, int, error) {
	if !db.fits(pos, int64Size) {
		return 0, pos, ErrOutOfRange
	}
	return int64(binary.BigEndian.Uint64(db.buf[pos:])), pos + int64Size, nil
}

func (db *DataBuf) GetFloat64(pos int) (float64, int, error) {
	if !db.fits(pos, float64Size) {
		return 0, pos, ErrOutOfRange
	}
	return math.Float64frombits(binary.BigEndian.Uint64(db.buf[pos:])), pos + float64Size, nil
}
