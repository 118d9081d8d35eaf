package bios

import (
	"encoding/binary"
	"os"

	"github.com/nwidger/psxcore/internal/psxerr"
)

const psexeHeaderSize = 0x800

var psexeMagic = [8]byte{'P', 'S', '-', 'X', ' ', 'E', 'X', 'E'}

// PSEXE is a parsed PS-X EXE side-load payload: a destination RAM address,
// the program bytes to place there, and the entry point to jump to once
// they are installed.
type PSEXE struct {
	LoadAddress uint32
	Data        []byte
	EntryPoint  uint32
}

// LoadPSEXE reads and parses a PS-X EXE file. It does not touch RAM or the
// CPU itself; the caller installs Data at LoadAddress and redirects
// execution to EntryPoint.
func LoadPSEXE(path string) (*PSEXE, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, psxerr.Errorf("psexe: %v", err)
	}
	if len(raw) < psexeHeaderSize {
		return nil, psxerr.Errorf("psexe: file too small to hold a header (%d bytes)", len(raw))
	}
	if string(raw[:8]) != string(psexeMagic[:]) {
		return nil, psxerr.Errorf("psexe: bad magic %q", raw[:8])
	}

	entryPoint := binary.LittleEndian.Uint32(raw[0x10:])
	loadAddress := binary.LittleEndian.Uint32(raw[0x18:])

	body := raw[psexeHeaderSize:]
	if len(body) == 0 {
		return nil, psxerr.Errorf("psexe: no program data after header")
	}

	return &PSEXE{
		LoadAddress: loadAddress,
		Data:        body,
		EntryPoint:  entryPoint,
	}, nil
}
