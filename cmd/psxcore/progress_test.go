package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nwidger/psxcore/internal/bios"
	"github.com/nwidger/psxcore/internal/system"
)

func TestLoadBIOSWithProgressInstallsImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bios.bin")
	if err := os.WriteFile(path, make([]byte, bios.Size), 0o644); err != nil {
		t.Fatal(err)
	}

	sys := system.New()
	if err := loadBIOSWithProgress(sys, path); err != nil {
		t.Fatalf("loadBIOSWithProgress: %v", err)
	}
}

func TestLoadBIOSWithProgressPropagatesError(t *testing.T) {
	sys := system.New()
	if err := loadBIOSWithProgress(sys, filepath.Join(t.TempDir(), "missing.bin")); err == nil {
		t.Fatal("expected an error for a missing BIOS file")
	}
}

func TestGDBConsoleForWrapsSystemStub(t *testing.T) {
	sys := system.New()
	sys.EnableGDB("127.0.0.1:0")
	if c := gdbConsoleFor(sys); c == nil {
		t.Fatal("gdbConsoleFor returned nil")
	}
}
