package protocol

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// AppendUint16 appends v in big-endian byte order.
func AppendUint16(buf []byte, v uint16) []byte {
	return append(buf, byte(v>>8), byte(v))
}

// ReadUint16 reads a big-endian uint16 from buf at *pos.
func ReadUint16(buf []byte, pos *int) (uint16, error) {
	if len(buf)-*pos < 2 {
		return 0, errors.Wrapf(ErrUnexpectedEOF, "uint16 at offset %d", *pos)
	}
	v := binary.BigEndian.Uint16(buf[*pos:])
	*pos += 2
	return v, nil
}
