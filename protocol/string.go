package protocol

import (
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/skyezerfox/moss-ping/constants"
)

// UTF16Len returns the number of UTF-16 code units needed to encode s.
// Runes outside the Basic Multilingual Plane take a surrogate pair.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// AppendString appends s to buf prefixed with its UTF-8 byte length. The
// protocol caps strings by UTF-16 code units, so that is what the limit
// is checked against.
func AppendString(buf []byte, s string) ([]byte, error) {
	if n := UTF16Len(s); n > constants.MaxStringLength {
		return buf, errors.Wrapf(ErrStringTooLong, "%d code units, limit is %d", n, constants.MaxStringLength)
	}
	buf = AppendVarInt(buf, int32(len(s)))
	return append(buf, s...), nil
}

// ReadString reads a length-prefixed string from buf at *pos. The prefix is
// taken as a byte count.
func ReadString(buf []byte, pos *int) (string, error) {
	i := *pos
	length, err := ReadVarInt(buf, &i)
	if err != nil {
		return "", err
	}
	if length < 0 {
		return "", errors.Wrapf(ErrNegativeLength, "string length %d", length)
	}
	if int(length) > len(buf)-i {
		return "", errors.Wrapf(ErrUnexpectedEOF, "string of %d bytes at offset %d, %d available", length, i, len(buf)-i)
	}
	raw := buf[i : i+int(length)]
	if !utf8.Valid(raw) {
		return "", errors.Wrapf(ErrInvalidEncoding, "string at offset %d", i)
	}
	*pos = i + int(length)
	return string(raw), nil
}

// DecodeString reads a length-prefixed string from the start of buf and
// returns it together with the number of bytes consumed.
func DecodeString(buf []byte) (string, int, error) {
	var pos int
	s, err := ReadString(buf, &pos)
	return s, pos, err
}
