package practicum

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies failures of a poll cycle.
type Kind int

const (
	KindEndpointUnreachable Kind = iota + 1
	KindEndpointMoved
	KindEndpointNotFound
	KindMissingKey
	KindWrongType
	KindEmptyHomeworkList
	KindStatusMissing
	KindUnknownStatus
)

func (k Kind) String() string {
	switch k {
	case KindEndpointUnreachable:
		return "EndpointUnreachable"
	case KindEndpointMoved:
		return "EndpointMoved"
	case KindEndpointNotFound:
		return "EndpointNotFound"
	case KindMissingKey:
		return "MissingKey"
	case KindWrongType:
		return "WrongType"
	case KindEmptyHomeworkList:
		return "EmptyHomeworkList"
	case KindStatusMissing:
		return "StatusMissing"
	case KindUnknownStatus:
		return "UnknownStatus"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the error type returned by this package.
// Header is kept for diagnostics and is not part of Error().
type Error struct {
	Kind       Kind
	Msg        string
	Endpoint   string
	StatusCode int
	Header     http.Header
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind, so sentinels like ErrEmptyHomeworkList
// work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// ErrEmptyHomeworkList is the expected "nothing changed" result of ExtractHomeworks.
var ErrEmptyHomeworkList = &Error{Kind: KindEmptyHomeworkList, Msg: "список домашних заданий пуст"}

// IsKind reports whether err is a *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

// KindOf returns the kind of err, or 0 if err is not a *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
