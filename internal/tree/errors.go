package tree

import (
	"errors"
	"fmt"

	"menedzer-plikow/internal/database"
	"menedzer-plikow/internal/paths"
)

type Kind string

const (
	KindNotFound        Kind = "NotFound"
	KindConflict        Kind = "Conflict"
	KindInvalidArgument Kind = "InvalidArgument"
	KindInvalidTarget   Kind = "InvalidTarget"
	// KindPhysicalStorageMismatch is only logged and counted; operations never return it.
	KindPhysicalStorageMismatch Kind = "PhysicalStorageMismatch"
	KindIOFailure               Kind = "IOFailure"
)

// Sentinels for errors.Is; an *Error matches the sentinel of its kind.
var (
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrConflict        = &Error{Kind: KindConflict}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrInvalidTarget   = &Error{Kind: KindInvalidTarget}
	ErrIOFailure       = &Error{Kind: KindIOFailure}
)

type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Message == "" && t.Err == nil
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) *Error { return newError(KindNotFound, format, args...) }
func conflict(format string, args ...any) *Error { return newError(KindConflict, format, args...) }
func invalidArgument(format string, args ...any) *Error {
	return newError(KindInvalidArgument, format, args...)
}
func invalidTarget(format string, args ...any) *Error {
	return newError(KindInvalidTarget, format, args...)
}

func ioFailure(err error, format string, args ...any) *Error {
	e := newError(KindIOFailure, format, args...)
	e.Err = err
	return e
}

// KindOf returns the kind carried by err, IOFailure for anything unclassified.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindIOFailure
}

// classify turns store errors into the tree taxonomy and stamps the operation name.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var te *Error
	switch {
	case errors.As(err, &te):
		if te.Op == "" {
			c := *te
			c.Op = op
			return &c
		}
		return te
	case errors.Is(err, database.ErrNodeNotFound):
		return &Error{Kind: KindNotFound, Op: op, Message: "node not found", Err: err}
	case errors.Is(err, database.ErrDuplicateNodeName):
		return &Error{Kind: KindConflict, Op: op, Message: "name already taken", Err: err}
	case errors.Is(err, paths.ErrNoFreeName):
		return &Error{Kind: KindConflict, Op: op, Message: "every candidate name is taken", Err: err}
	default:
		return &Error{Kind: KindIOFailure, Op: op, Message: "metadata store failure", Err: err}
	}
}
