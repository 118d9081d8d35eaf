package gdbstub

import (
	"os"
	"syscall"

	"github.com/pkg/term/termios"
	"golang.org/x/term"

	"github.com/nwidger/psxcore/internal/logger"
	"github.com/nwidger/psxcore/internal/psxerr"
)

// Console is a local fallback for when no GDB client is attached: stdin
// is put into raw mode so a bare Ctrl-C pauses the debugger the same way
// a client's interrupt packet does, and the log-tail terminal is dropped
// out of canonical mode so live log lines don't fight the shell's line
// discipline while the console is running.
type Console struct {
	stub *Stub

	inFd     int
	rawState *term.State
	outAttr  syscall.Termios
}

// NewConsole returns a Console driving stub's debugger.
func NewConsole(stub *Stub) *Console {
	return &Console{stub: stub}
}

// Start puts the terminal into raw/cbreak mode and begins watching stdin
// for Ctrl-C. The returned restore func must run before the process
// exits, or the shell is left with a wedged line discipline.
func (c *Console) Start() (restore func(), err error) {
	c.inFd = int(os.Stdin.Fd())
	state, err := term.MakeRaw(c.inFd)
	if err != nil {
		return nil, psxerr.Errorf("gdbstub: console: %v", err)
	}
	c.rawState = state

	if err := termios.Tcgetattr(os.Stdout.Fd(), &c.outAttr); err == nil {
		cbreak := c.outAttr
		termios.Cfmakecbreak(&cbreak)
		termios.Tcsetattr(os.Stdout.Fd(), termios.TCIFLUSH, &cbreak)
	}

	go c.watch()

	return func() {
		term.Restore(c.inFd, c.rawState)
		termios.Tcsetattr(os.Stdout.Fd(), termios.TCIFLUSH, &c.outAttr)
	}, nil
}

func (c *Console) watch() {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return
		}
		if buf[0] == ctrlC {
			logger.Log("GDB", "console break, pausing")
			c.stub.Dbg.SetPausedState(true, false)
		}
	}
}
