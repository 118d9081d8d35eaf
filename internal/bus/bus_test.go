package bus

import "testing"

func TestLoad32ComposesFromHalfwords(t *testing.T) {
	b := New()
	if err := b.Store32(0x0000_0100, 0xAABBCCDD); err != nil {
		t.Fatalf("unexpected store error: %v", err)
	}
	full, err := b.Load32(0x0000_0100)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	lo, err := b.Load16(0x0000_0100)
	if err != nil {
		t.Fatalf("unexpected low-halfword load error: %v", err)
	}
	hi, err := b.Load16(0x0000_0104 - 2)
	if err != nil {
		t.Fatalf("unexpected high-halfword load error: %v", err)
	}
	if got, want := full, uint32(lo)|uint32(hi)<<16; got != want {
		t.Fatalf("load<u32> != load<u16> | load<u16+2> << 16: got %#x want %#x", got, want)
	}
}

func TestKSEG0AndKSEG1MirrorKUSEG(t *testing.T) {
	b := New()
	if err := b.Store32(0x0000_1000, 0x12345678); err != nil {
		t.Fatal(err)
	}
	kseg0, err := b.Load32(0x8000_1000)
	if err != nil {
		t.Fatal(err)
	}
	kseg1, err := b.Load32(0xA000_1000)
	if err != nil {
		t.Fatal(err)
	}
	if kseg0 != 0x12345678 || kseg1 != 0x12345678 {
		t.Fatalf("expected mirrored reads, got kseg0=%#x kseg1=%#x", kseg0, kseg1)
	}
}

func TestAddressPastRAMFaults(t *testing.T) {
	b := New()
	if err := b.Store8(0x0000_0010, 0x42); err != nil {
		t.Fatal(err)
	}
	v, err := b.Load8(0x0000_0010)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x42 {
		t.Fatalf("expected the stored byte back from RAM, got %#x", v)
	}
	if _, err := b.Load8(uint32(ramSize) + 0x10); err == nil {
		t.Fatal("expected a bus fault for an address past the 2 MiB of RAM")
	}
}

func TestBIOSIsReadOnly(t *testing.T) {
	b := New()
	data := make([]byte, biosSize)
	data[0] = 0x55
	if err := b.LoadBIOS(data); err != nil {
		t.Fatal(err)
	}
	if err := b.Store8(biosBase, 0xAA); err != nil {
		t.Fatal(err)
	}
	v, err := b.Load8(biosBase)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x55 {
		t.Fatalf("expected write to BIOS to be ignored, got %#x", v)
	}
}

func TestExpansionRegion1ReadsHighZ(t *testing.T) {
	b := New()
	v, err := b.Load8(exp1Base)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0xFF {
		t.Fatalf("expected 0xFF from unpopulated expansion region 1, got %#x", v)
	}
}

func TestExpansionRegion1WriteFails(t *testing.T) {
	b := New()
	if err := b.Store8(exp1Base, 0x00); err == nil {
		t.Fatal("expected write to expansion region 1 to fail")
	}
}

func TestUnmappedAddressFaults(t *testing.T) {
	b := New()
	if _, err := b.Load8(0x4000_0000); err == nil {
		t.Fatal("expected bus fault for unmapped address")
	}
}

type fakeIRQPort struct {
	status, mask uint32
}

func (f *fakeIRQPort) Load(offset uint32) uint32 {
	if offset == ioIRQStatus {
		return f.status
	}
	return f.mask
}

func (f *fakeIRQPort) Store(offset uint32, value uint32) {
	if offset == ioIRQStatus {
		f.status &= value
		return
	}
	f.mask = value
}

func TestIRQPortByteWritesPreserveOtherLanes(t *testing.T) {
	b := New()
	irq := &fakeIRQPort{mask: 0x1234}
	b.AttachIRQ(irq)
	if err := b.Store8(ioBase+ioIRQMask, 0xAB); err != nil {
		t.Fatal(err)
	}
	if irq.mask != 0x12AB {
		t.Fatalf("expected only the low byte to change, got %#x", irq.mask)
	}
}
