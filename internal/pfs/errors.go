package pfs

import (
	"errors"
	"fmt"
)

// Kind sentinels. Every *Error matches exactly one of these through errors.Is.
// Its cause, such as fs.ErrNotExist, matches as well.
var (
	ErrReadFailure     = errors.New("read failure")
	ErrWriteFailure    = errors.New("write failure")
	ErrDeleteFailure   = errors.New("delete failure")
	ErrCreateFailure   = errors.New("create failure")
	ErrParseFailure    = errors.New("parse failure")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidPath     = errors.New("invalid path")
	ErrAlreadyExists   = errors.New("already exists")
	ErrSyncFailure     = errors.New("sync failure")
)

// Error describes a failed store operation: what was being done and how it failed.
// Err holds the underlying cause, if any, and is reachable through errors.Is and errors.As.
type Error struct {
	Kind error
	What string
	How  string
	Err  error
}

func newError(kind error, what string, how any) *Error {
	e := &Error{Kind: kind, What: what}
	switch v := how.(type) {
	case nil:
	case error:
		e.Err = v
		e.How = v.Error()
	case string:
		e.How = v
	default:
		e.How = fmt.Sprint(v)
	}
	return e
}

func (e *Error) Error() string {
	if e.How == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.What)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.What, e.How)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return e.Kind == target
}

// IsValidation reports whether err was caused by a bad request rather than a server side failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrInvalidPath) ||
		errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrParseFailure)
}
