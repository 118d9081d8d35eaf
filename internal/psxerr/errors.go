package psxerr

import (
	"fmt"
	"strings"
)

// Values is the type used to specify arguments for Errorf.
type Values []interface{}

// curated errors let code raise a predefined kind of failure without
// worrying too much about how the message is built up across call frames.
type curated struct {
	message string
	values  Values
}

// Errorf creates a new curated error.
func Errorf(message string, values ...interface{}) error {
	return curated{message: message, values: values}
}

// Error implements the go language error interface. Adjacent duplicate
// message parts (the result of repeated wrapping at call boundaries) are
// collapsed.
func (er curated) Error() string {
	s := fmt.Errorf(er.message, er.values...).Error()

	p := strings.SplitN(s, ": ", 3)
	if len(p) > 1 && p[0] == p[1] {
		return strings.Join(p[1:], ": ")
	}
	return strings.Join(p, ": ")
}

// Head returns the leading part of the curated message, or the plain
// Error() string if err is not a curated error.
func Head(err error) string {
	if er, ok := err.(curated); ok {
		return er.message
	}
	return err.Error()
}

// IsAny reports whether err was raised through this package.
func IsAny(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(curated)
	return ok
}

// Is reports whether err's leading message matches head.
func Is(err error, head string) bool {
	if err == nil {
		return false
	}
	er, ok := err.(curated)
	return ok && er.message == head
}
