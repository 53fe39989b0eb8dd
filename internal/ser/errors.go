package ser

import (
	"errors"
	"fmt"
)

// Error is the single failure kind of the protocol. It carries a free-form
// message and nothing else.
type Error struct {
	Msg string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Msg
}

// Custom builds an *Error from any printable message.
func Custom(msg any) error {
	return &Error{Msg: fmt.Sprint(msg)}
}

// Customf builds an *Error from a format string.
func Customf(format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

// IsCustom reports whether err is, or wraps, an *Error.
// Uses errors.As to handle wrapped errors.
func IsCustom(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
