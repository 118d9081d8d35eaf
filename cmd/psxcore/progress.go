package main

import (
	"github.com/schollz/progressbar/v3"

	"github.com/nwidger/psxcore/internal/gdbstub"
	"github.com/nwidger/psxcore/internal/system"
)

// loadBIOSWithProgress loads the BIOS image, reporting the two host
// operations involved (advisory file lock + 512KiB read, then install
// onto the bus) on a small progress bar rather than leaving the CLI
// silent for however long the disk read takes.
func loadBIOSWithProgress(sys *system.System, path string) error {
	bar := progressbar.Default(2, "loading BIOS")
	defer bar.Close()

	bar.Add(1)
	err := sys.LoadBIOS(path)
	bar.Add(1)
	return err
}

// injectPSEXEWithProgress mirrors loadBIOSWithProgress for the optional
// side-loaded executable.
func injectPSEXEWithProgress(sys *system.System, path string) error {
	bar := progressbar.Default(2, "injecting PS-EXE")
	defer bar.Close()

	bar.Add(1)
	err := sys.InjectPSEXE(path)
	bar.Add(1)
	return err
}

// gdbConsoleFor builds the local raw-mode console fallback for sys's GDB
// stub.
func gdbConsoleFor(sys *system.System) *gdbstub.Console {
	return gdbstub.NewConsole(sys.GDB)
}
