// Package bios loads the 512 KiB BIOS image and optional side-loaded
// PS-EXE payloads from the host filesystem. It owns the only filesystem
// access in the core: everything downstream (bus, cpu) works with plain
// byte slices.
package bios

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/nwidger/psxcore/internal/psxerr"
)

const Size = 512 * 1024

// Load reads a BIOS image from path, taking a shared advisory lock for the
// duration of the read so a second instance started against the same file
// doesn't race a concurrent writer.
func Load(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, psxerr.Errorf("bios: %v", err)
	}
	defer f.Close()

	if err := unix.Flock(int(f.Fd()), unix.LOCK_SH); err == nil {
		defer unix.Flock(int(f.Fd()), unix.LOCK_UN)
	}

	info, err := f.Stat()
	if err != nil {
		return nil, psxerr.Errorf("bios: %v", err)
	}
	if info.Size() != Size {
		return nil, psxerr.Errorf("bios: image must be exactly %d bytes, got %d", Size, info.Size())
	}

	data := make([]byte, Size)
	if _, err := f.ReadAt(data, 0); err != nil {
		return nil, psxerr.Errorf("bios: %v", err)
	}
	return data, nil
}
