// Package psxerr is a helper package for the plain Go error type. Errors
// raised anywhere in the core are curated: call sites raise them through
// Errorf with a subsystem-prefixed message ("bus: ...", "cpu: ...") rather
// than constructing a plain fmt.Errorf directly. The one exception is the
// bus's BusFault, a typed error for accesses to unmapped addresses.
//
// The Error() implementation normalises the causal chain so that wrapping
// an error at several levels of the call stack does not produce duplicated
// adjacent message parts.
package psxerr
