package gte

import "testing"

func TestRegister28RoundTripsThrough5BitTruncation(t *testing.T) {
	var g GTE
	g.SetReg(28, 0x1F|0x1F<<5|0x1F<<10)
	got := g.GetReg(28)
	if got != 0x1F|0x1F<<5|0x1F<<10 {
		t.Fatalf("expected full-scale round trip, got %#x", got)
	}

	got29 := g.GetReg(29)
	if got29 != got {
		t.Fatalf("register 29 should mirror register 28's reconstruction, got %#x vs %#x", got29, got)
	}
}

func TestRegister15ReturnsLastScreenValue(t *testing.T) {
	var g GTE
	g.SetReg(15, 0x00010002)
	g.SetReg(15, 0x00030004)
	got := g.GetReg(15)
	want := uint32(0x00030004)
	if got != want {
		t.Fatalf("expected register 15 to return the last pushed S value, got %#x want %#x", got, want)
	}
}

func TestMasterErrorFlagIsORofSubset(t *testing.T) {
	var g GTE
	g.Flag = 1 << flagIR1Sat
	g.updateMasterFlag()
	if g.Flag&(1<<flagMasterError) == 0 {
		t.Fatal("expected master error bit to be set")
	}

	g.Flag = 1 << flagIR3Sat // not in the documented subset
	g.updateMasterFlag()
	if g.Flag&(1<<flagMasterError) != 0 {
		t.Fatal("IR3 saturation alone must not set the master error bit")
	}
}

func TestUNRDivideBoundaryCase(t *testing.T) {
	var g GTE
	got := g.unrDivide(0x100, 0x100)
	if got != 0x10000 {
		t.Fatalf("expected UNR divide of 0x100/0x100 to be 0x10000, got %#x", got)
	}
}

func TestUNRDivideOverflowClampsTo0x1FFFF(t *testing.T) {
	var g GTE
	got := g.unrDivide(0x200, 0x001)
	if got != 0x1FFFF {
		t.Fatalf("expected clamp to 0x1FFFF on overflow, got %#x", got)
	}
	if g.Flag&(1<<flagDivOverflow) == 0 {
		t.Fatal("expected divide-overflow flag to be set")
	}
}

func TestIRSaturationClampsAndFlags(t *testing.T) {
	var g GTE
	v := g.saturateIR(1, 0x9000, false)
	if v != 0x7FFF {
		t.Fatalf("expected clamp to 0x7FFF, got %#x", v)
	}
	if g.Flag&(1<<flagIR1Sat) == 0 {
		t.Fatal("expected IR1 saturation flag")
	}

	var g2 GTE
	v2 := g2.saturateIR(1, -1, true)
	if v2 != 0 {
		t.Fatalf("expected lm clamp to 0, got %d", v2)
	}
}
