package protocol

import (
	"io"

	"github.com/pkg/errors"
	"github.com/skyezerfox/moss-ping/constants"
)

const (
	segmentBits = 0x7F
	continueBit = 0x80
)

// AppendVarInt appends v to buf using the protocol's VarInt encoding.
func AppendVarInt(buf []byte, v int32) []byte {
	u := uint32(v)
	for u&^segmentBits != 0 {
		buf = append(buf, byte(u&segmentBits)|continueBit)
		u >>= 7
	}
	return append(buf, byte(u))
}

// AppendVarLong is the 64-bit counterpart of AppendVarInt.
func AppendVarLong(buf []byte, v int64) []byte {
	u := uint64(v)
	for u&^segmentBits != 0 {
		buf = append(buf, byte(u&segmentBits)|continueBit)
		u >>= 7
	}
	return append(buf, byte(u))
}

// VarIntSize returns the number of bytes AppendVarInt would write for v.
func VarIntSize(v int32) int {
	u := uint32(v)
	n := 1
	for u&^segmentBits != 0 {
		u >>= 7
		n++
	}
	return n
}

// ReadVarInt decodes a VarInt from buf starting at *pos and moves *pos past it.
func ReadVarInt(buf []byte, pos *int) (int32, error) {
	v, err := readVar(buf, pos, constants.MaxVarIntLen)
	return int32(uint32(v)), err
}

// ReadVarLong decodes a VarLong from buf starting at *pos and moves *pos past it.
func ReadVarLong(buf []byte, pos *int) (int64, error) {
	v, err := readVar(buf, pos, constants.MaxVarLongLen)
	return int64(v), err
}

// DecodeVarInt decodes a VarInt from the start of buf and returns the value
// together with the number of bytes consumed.
func DecodeVarInt(buf []byte) (int32, int, error) {
	var pos int
	v, err := ReadVarInt(buf, &pos)
	return v, pos, err
}

// DecodeVarLong is the 64-bit counterpart of DecodeVarInt.
func DecodeVarLong(buf []byte) (int64, int, error) {
	var pos int
	v, err := ReadVarLong(buf, &pos)
	return v, pos, err
}

func readVar(buf []byte, pos *int, maxLen int) (uint64, error) {
	var value uint64
	i := *pos
	for n := 0; ; n++ {
		if n == maxLen {
			return 0, errors.Wrapf(ErrVarIntTooLong, "more than %d bytes at offset %d", maxLen, *pos)
		}
		if i >= len(buf) {
			return 0, errors.Wrapf(ErrUnexpectedEOF, "varint at offset %d", *pos)
		}
		b := buf[i]
		i++
		value |= uint64(b&segmentBits) << (7 * n)
		if b&continueBit == 0 {
			break
		}
	}
	*pos = i
	return value, nil
}

// ReadVarIntFrom decodes a VarInt one byte at a time from r.
func ReadVarIntFrom(r io.ByteReader) (int32, error) {
	var value uint32
	for n := 0; ; n++ {
		if n == constants.MaxVarIntLen {
			return 0, ErrVarIntTooLong
		}
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && n > 0 {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		value |= uint32(b&segmentBits) << (7 * n)
		if b&continueBit == 0 {
			return int32(value), nil
		}
	}
}
