package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/term"

	"github.com/nwidger/psxcore/internal/config"
	"github.com/nwidger/psxcore/internal/logger"
	"github.com/nwidger/psxcore/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a YAML config file (optional)")
	biosPath := flag.String("bios", "", "path to a 512KiB BIOS image (overrides config)")
	exePath := flag.String("exe", "", "optional PS-EXE file to side-load after boot")
	gdbAddr := flag.String("gdb-addr", "", "override the GDB stub listen address, e.g. :1234")
	console := flag.Bool("console", false, "enable the local raw-mode console when a GDB stub is running")
	frames := flag.Int("frames", 0, "run this many video frames then exit (0 runs until interrupted)")
	logTail := flag.Int("log-tail", 20, "number of trailing log lines to print on exit")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *biosPath != "" {
		cfg.BIOSPath = *biosPath
	}
	if *gdbAddr != "" {
		cfg.GDBEnable = true
	}

	if cfg.BIOSPath == "" {
		return fmt.Errorf("psxcore: no BIOS path given (pass -bios or set bios_path in -config)")
	}

	sys := system.New()

	if err := loadBIOSWithProgress(sys, cfg.BIOSPath); err != nil {
		return err
	}

	if *exePath != "" {
		if err := injectPSEXEWithProgress(sys, *exePath); err != nil {
			return err
		}
	}

	if cfg.GDBEnable {
		addr := fmt.Sprintf(":%d", cfg.GDBPort)
		if *gdbAddr != "" {
			addr = *gdbAddr
		}
		sys.EnableGDB(addr)
		logger.Logf("SYSTEM", "GDB stub listening on %s", addr)

		if *console && term.IsTerminal(int(os.Stdin.Fd())) {
			sys.GDBConsole = gdbConsoleFor(sys)
			restore, err := sys.GDBConsole.Start()
			if err != nil {
				logger.Logf("SYSTEM", "console unavailable: %v", err)
			} else {
				defer restore()
			}
		}
	}

	defer func() {
		logger.Tail(os.Stdout, *logTail)
	}()

	return runFrameLoop(sys, *frames)
}

// runFrameLoop drives the system headless: frames video frames if
// positive, otherwise until SIGINT.
func runFrameLoop(sys *system.System, frames int) error {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	for i := 0; frames <= 0 || i < frames; i++ {
		select {
		case <-interrupt:
			return nil
		default:
		}
		if err := sys.RunFrame(); err != nil {
			return err
		}
	}
	return nil
}
