package bios

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func writePSEXE(t *testing.T, loadAddr, entry uint32, body []byte) string {
	t.Helper()
	header := make([]byte, psexeHeaderSize+len(body))
	copy(header[:8], psexeMagic[:])
	binary.LittleEndian.PutUint32(header[0x10:], entry)
	binary.LittleEndian.PutUint32(header[0x18:], loadAddr)
	copy(header[psexeHeaderSize:], body)

	dir := t.TempDir()
	path := filepath.Join(dir, "game.exe")
	if err := os.WriteFile(path, header, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPSEXEParsesAddressesAndBody(t *testing.T) {
	body := []byte{1, 2, 3, 4}
	path := writePSEXE(t, 0x8001_0000, 0x8001_0010, body)

	exe, err := LoadPSEXE(path)
	if err != nil {
		t.Fatalf("LoadPSEXE: %v", err)
	}
	if exe.LoadAddress != 0x8001_0000 {
		t.Fatalf("LoadAddress = %#x", exe.LoadAddress)
	}
	if exe.EntryPoint != 0x8001_0010 {
		t.Fatalf("EntryPoint = %#x", exe.EntryPoint)
	}
	if string(exe.Data) != string(body) {
		t.Fatalf("Data = %v, want %v", exe.Data, body)
	}
}

func TestLoadPSEXERejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.exe")
	if err := os.WriteFile(path, make([]byte, psexeHeaderSize+4), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPSEXE(path); err == nil {
		t.Fatal("expected an error for a missing PS-X EXE magic")
	}
}

func TestLoadPSEXERejectsTruncatedHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.exe")
	if err := os.WriteFile(path, []byte("too short"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPSEXE(path); err == nil {
		t.Fatal("expected an error for a truncated PS-X EXE header")
	}
}

func TestLoadPSEXERejectsEmptyBody(t *testing.T) {
	path := writePSEXE(t, 0x8001_0000, 0x8001_0000, nil)
	if _, err := LoadPSEXE(path); err == nil {
		t.Fatal("expected an error for a PS-X EXE with no program data")
	}
}
