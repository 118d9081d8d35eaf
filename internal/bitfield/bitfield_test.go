package bitfield

import "testing"

func TestGetExtractsShiftedAndMaskedBits(t *testing.T) {
	f := Field[uint32]{Offset: 4, Width: 3}
	if got := f.Get(0b0111_0000); got != 0b111 {
		t.Fatalf("Get = %b, want %b", got, 0b111)
	}
}

func TestSetPreservesSurroundingBits(t *testing.T) {
	f := Field[uint32]{Offset: 4, Width: 3}
	got := f.Set(0xFFFF_FFFF, 0b010)
	want := uint32(0xFFFF_FFAF)
	if got != want {
		t.Fatalf("Set = %#x, want %#x", got, want)
	}
}

func TestGetSignedExtendsNegativeValues(t *testing.T) {
	f := Field[uint32]{Offset: 0, Width: 4}
	if got := f.GetSigned(0b1000); got != -8 {
		t.Fatalf("GetSigned(0b1000) = %d, want -8", got)
	}
	if got := f.GetSigned(0b0111); got != 7 {
		t.Fatalf("GetSigned(0b0111) = %d, want 7", got)
	}
}

func TestBoolAndSetBoolRoundTrip(t *testing.T) {
	var v uint32
	v = SetBool(v, 5, true)
	if !Bool(v, 5) {
		t.Fatal("bit 5 not set")
	}
	v = SetBool(v, 5, false)
	if Bool(v, 5) {
		t.Fatal("bit 5 still set after clearing")
	}
}
