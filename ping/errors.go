package ping

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds. Every error returned by Ping matches exactly one of these
// with errors.Is.
var (
	ErrSrvResolutionFailed  = errors.New("DNS SRV resolution failed")
	ErrHostResolutionFailed = errors.New("target host could not be resolved")
	ErrConnectFailed        = errors.New("TCP connection failed")
	ErrConnectTimeout       = errors.New("TCP connection timed out")
	ErrProtocol             = errors.New("protocol error")
	ErrEncoding             = errors.New("encoding error")
	ErrJSON                 = errors.New("JSON parse error")
)

// Error describes a failed ping. It unwraps to both its Kind and the
// underlying cause.
type Error struct {
	Kind  error
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v while %v", e.Kind, e.Stage)
	}
	return fmt.Sprintf("%v while %v: %v", e.Kind, e.Stage, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func fail(kind error, stage Stage, err error) *Error {
	return &Error{Kind: kind, Stage: stage, Err: err}
}
