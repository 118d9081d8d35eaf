package bitfield

import "golang.org/x/exp/constraints"

// Unsigned is the set of storage types a Field can be carved out of.
type Unsigned = constraints.Unsigned

// Field describes a named bit slice of width Width starting at bit Offset
// (LSB = 0) inside a storage word of type S.
type Field[S Unsigned] struct {
	Offset uint
	Width  uint
}

func (f Field[S]) mask() S {
	if f.Width >= 64 {
		return ^S(0)
	}
	return (S(1) << f.Width) - 1
}

// Get extracts the unsigned value of the field from storage.
func (f Field[S]) Get(storage S) S {
	return (storage >> f.Offset) & f.mask()
}

// GetSigned extracts the field and sign-extends it as a two's-complement
// value of Width bits, returned widened to int64.
func (f Field[S]) GetSigned(storage S) int64 {
	v := int64(f.Get(storage))
	signBit := int64(1) << (f.Width - 1)
	if v&signBit != 0 {
		v -= signBit << 1
	}
	return v
}

// Set returns storage with the field replaced by value (truncated to Width
// bits); all other bits are preserved.
func (f Field[S]) Set(storage S, value S) S {
	m := f.mask() << f.Offset
	return (storage &^ m) | ((value & f.mask()) << f.Offset)
}

// Bool reads the field as a single bit boolean. Offset must name a
// single-bit field; Width is implicitly 1.
func Bool[S Unsigned](storage S, offset uint) bool {
	return (storage>>offset)&1 != 0
}

// SetBool writes a single bit, preserving every other bit of storage.
func SetBool[S Unsigned](storage S, offset uint, value bool) S {
	if value {
		return storage | (S(1) << offset)
	}
	return storage &^ (S(1) << offset)
}
