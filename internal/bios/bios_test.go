package bios

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReadsAnExactSizedImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bios.bin")
	want := make([]byte, Size)
	want[0] = 0xAA
	want[Size-1] = 0x55
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got[0] != 0xAA || got[Size-1] != 0x55 {
		t.Fatal("loaded image content mismatch")
	}
}

func TestLoadRejectsWrongSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bios.bin")
	if err := os.WriteFile(path, []byte("short"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an undersized BIOS image")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.bin")); err == nil {
		t.Fatal("expected an error for a missing BIOS file")
	}
}
