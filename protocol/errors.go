package protocol

import (
	"fmt"

	"github.com/pkg/errors"
)

// Codec errors. These are returned for malformed values inside a buffer.
var (
	ErrVarIntTooLong   = errors.New("varint is too big")
	ErrStringTooLong   = errors.New("string is too long for the protocol")
	ErrUnexpectedEOF   = errors.New("attempted to read beyond the buffer")
	ErrInvalidEncoding = errors.New("string is not valid utf-8")
	ErrNegativeLength  = errors.New("negative length prefix")
)

// Framing errors. These describe a response frame that cannot be trusted.
var (
	ErrMalformedLength    = errors.New("malformed packet length")
	ErrTruncatedFrame     = errors.New("truncated packet")
	ErrUnexpectedPacketID = errors.New("unexpected packet id")
)

// IsEncodingError reports whether err was caused by a codec failure.
func IsEncodingError(err error) bool {
	for _, target := range []error{ErrVarIntTooLong, ErrStringTooLong, ErrUnexpectedEOF, ErrInvalidEncoding, ErrNegativeLength} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsFramingError reports whether err was caused by a bad response frame.
func IsFramingError(err error) bool {
	return errors.Is(err, ErrMalformedLength) ||
		errors.Is(err, ErrTruncatedFrame) ||
		errors.Is(err, ErrUnexpectedPacketID)
}

// frameError ties a framing sentinel to the failure that triggered it so
// both stay reachable through errors.Is and errors.As.
type frameError struct {
	kind  error
	cause error
	msg   string
}

func (e *frameError) Error() string {
	return e.kind.Error() + ": " + e.msg + ": " + e.cause.Error()
}

func (e *frameError) Unwrap() []error {
	return []error{e.kind, e.cause}
}

func wrapFrame(kind, cause error, format string, args ...interface{}) error {
	return errors.WithStack(&frameError{kind: kind, cause: cause, msg: fmt.Sprintf(format, args...)})
}
