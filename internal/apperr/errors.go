package apperr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind tags the stage of the pipeline an error came from.
type Kind int

const (
	Unknown Kind = iota
	MissingCredential
	Network
	BodyRead
	Decode
	ImplausibleData
)

func (k Kind) String() string {
	switch k {
	case MissingCredential:
		return "missing_credential"
	case Network:
		return "network"
	case BodyRead:
		return "body_read"
	case Decode:
		return "decode"
	case ImplausibleData:
		return "implausible_data"
	}
	return "unknown"
}

// Error is a pipeline failure. Body holds the raw upstream response when one was received.
type Error struct {
	Kind Kind
	Err  error
	Body string
}

func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func WithBody(kind Kind, err error, body string) *Error {
	return &Error{Kind: kind, Err: err, Body: body}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
