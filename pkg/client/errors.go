package client

import (
	"errors"
	"fmt"
)

// Kind classifies a failed request.
type Kind int

const (
	// KindTransport means no response was obtained (DNS, timeout, reset).
	KindTransport Kind = iota + 1
	// KindBadResponse means a response arrived but was unsuccessful or lacked the payload.
	KindBadResponse
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindBadResponse:
		return "bad response"
	default:
		return "unknown"
	}
}

// Input validation errors. These are returned before any request is issued.
var (
	ErrEmptyID     = errors.New("restaurant id is empty")
	ErrEmptyReview = errors.New("review text is empty")
)

// Error is returned for every request that reached the network layer and failed.
type Error struct {
	Kind    Kind
	Op      string // "fetch" or "post"
	Status  int    // HTTP status, 0 for transport failures
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s: %d %s", e.Op, e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == KindTransport
}

// IsBadResponse reports whether err is an unsuccessful or unusable response.
func IsBadResponse(err error) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == KindBadResponse
}

func transportError(op string, err error) *Error {
	return &Error{Kind: KindTransport, Op: op, Message: err.Error(), Err: err}
}

func badResponse(op string, status int, msg string) *Error {
	return &Error{Kind: KindBadResponse, Op: op, Status: status, Message: msg}
}
