package codec

import "errors"

var (
	ErrInsufficientSpace = errors.New("codec: insufficient space")
	ErrOutOfRange        = errors.New("codec: position out of range")
	ErrStringTooLong     = errors.New("codec: string longer than 65535 bytes")
	ErrTooManyRecords    = errors.New("codec: too many records for one message")
	ErrUnknownMsgType    = errors.New("codec: unknown message type")
	ErrFrameTooShort     = errors.New("codec: frame too short")
	ErrBadCRC            = errors.New("codec: crc mismatch")
)
