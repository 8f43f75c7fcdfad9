package server

import (
	"encoding/binary"
	"errors"
	"io"
	"net"

	"github.com/smallnest/goframe"
)

// Frame en el wire: length(4B, big-endian) | payload | crc(2B).
var (
	encoderConfig = goframe.EncoderConfig{
		ByteOrder:                       binary.BigEndian,
		LengthFieldLength:               4,
		LengthAdjustment:                0,
		LengthIncludesLengthFieldLength: false,
	}

	decoderConfig = goframe.DecoderConfig{
		ByteOrder:           binary.BigEndian,
		LengthFieldOffset:   0,
		LengthFieldLength:   4,
		LengthAdjustment:    0,
		InitialBytesToStrip: 4,
	}
)

// NewFrameConn envuelve conn con el framing de longitud del lado cliente
// (trackgen, tests). El server lee con ReadFrame.
func NewFrameConn(conn net.Conn) goframe.FrameConn {
	return goframe.NewLengthFieldBasedFrameConn(encoderConfig, decoderConfig, conn)
}

var ErrFrameTooLarge = errors.New("server: frame exceeds max size")

// ReadFrame lee un frame del lado servidor. El largo declarado se valida
// contra maxLen antes de reservar el cuerpo.
func ReadFrame(r io.Reader, maxLen int) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := decoderConfig.ByteOrder.Uint32(lenBuf[:])
	if uint64(n) > uint64(maxLen) {
		return nil, ErrFrameTooLarge
	}
	frame := make([]byte, n)
	if _, err := io.ReadFull(r, frame); err != nil {
		return nil, err
	}
	return frame, nil
}
