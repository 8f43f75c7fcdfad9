package codec

import "encoding/binary"

const crcLen = 2

// crc16IBM (poly 0xA001, init 0), el mismo que usa Codec12 de Teltonika.
func crc16IBM(b []byte) uint16 {
	var crc uint16
	for _, v := range b {
		crc ^= uint16(v)
		for i := 0; i < 8; i++ {
			if (crc & 1) == 1 {
				crc = (crc >> 1) ^ 0xA001
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}

// SealFrame arma el cuerpo de un frame de transporte: payload | crc(2B).
// El prefijo de longitud lo pone la capa de framing (goframe).
func SealFrame(payload []byte) []byte {
	out := make([]byte, 0, len(payload)+crcLen)
	out = append(out, payload...)
	return binary.BigEndian.AppendUint16(out, crc16IBM(payload))
}

// OpenFrame valida el CRC y devuelve el payload (sin copiar).
func OpenFrame(frame []byte) ([]byte, error) {
	if len(frame) < crcLen {
		return nil, ErrFrameTooShort
	}
	payload := frame[:len(frame)-crcLen]
	want := binary.BigEndian.Uint16(frame[len(frame)-crcLen:])
	if crc16IBM(payload) != want {
		return nil, ErrBadCRC
	}
	return payload, nil
}
