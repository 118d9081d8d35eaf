// Package bitfield provides a small type-parameterized abstraction over
// named bit slices inside packed hardware registers (GPUSTAT-shaped words,
// DPCR/DICR, timer mode fields, COP0 sr/cause, GTE command words). Given a
// storage type, a bit offset and a width, Field extracts or injects the
// slice; values come back in the storage type, or sign-extended to int64
// through GetSigned.
package bitfield
