package system

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewWiresEveryComponent(t *testing.T) {
	s := New()
	if s.Bus.IRQ == nil || s.Bus.DMA == nil || s.Bus.Timers == nil || s.Bus.GPU == nil || s.Bus.CDROM == nil {
		t.Fatal("bus ports not fully wired")
	}
	if s.CPU.Bus == nil || s.CPU.Debug == nil {
		t.Fatal("CPU not wired to bus/debugger")
	}
	if s.IRQ.CPU == nil {
		t.Fatal("IRQ controller not wired to CPU")
	}
}

func TestStepAdvancesPastResetVectorNOPStream(t *testing.T) {
	s := New()
	start := s.CPU.PC
	if err := s.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if s.CPU.PC == start {
		t.Fatal("PC did not advance")
	}
}

func TestLoadBIOSRejectsWrongSize(t *testing.T) {
	s := New()
	dir := t.TempDir()
	path := filepath.Join(dir, "bios.bin")
	if err := os.WriteFile(path, []byte("too small"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.LoadBIOS(path); err == nil {
		t.Fatal("expected an error loading an undersized BIOS image")
	}
}

func TestInjectPSEXEPlacesEntryPoint(t *testing.T) {
	s := New()

	const loadAddr = 0x8001_0000
	const entry = 0x8001_0010
	body := make([]byte, 64)
	header := make([]byte, 0x800+len(body))
	copy(header[0:8], "PS-X EXE")
	putLE32(header[0x10:], entry)
	putLE32(header[0x18:], loadAddr)
	copy(header[0x800:], body)

	dir := t.TempDir()
	path := filepath.Join(dir, "game.exe")
	if err := os.WriteFile(path, header, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := s.InjectPSEXE(path); err != nil {
		t.Fatalf("InjectPSEXE: %v", err)
	}
	if s.CPU.PC != entry {
		t.Fatalf("PC = %#08x, want %#08x", s.CPU.PC, entry)
	}
}

func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
