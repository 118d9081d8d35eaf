package gdbstub

import (
	"bufio"
	"encoding/hex"
	"io"
	"net"
	"strings"
	"sync"

	"github.com/nwidger/psxcore/internal/cpu"
	"github.com/nwidger/psxcore/internal/logger"
	"github.com/nwidger/psxcore/internal/psxerr"
)

const ctrlC = 0x03

// MemoryPeeker is the narrow read surface the stub needs for 'm' memory
// reads: a side-effect-free byte peek, independent of the CPU's isolated
// cache and alignment rules.
type MemoryPeeker interface {
	Peek(addr uint32) uint8
}

// DebugController is the narrow surface of *debugger.Debugger the stub
// drives: breakpoints and the cooperative pause/step flags.
type DebugController interface {
	AddBreakpoint(address uint32)
	RemoveBreakpoint(address uint32)
	SetPausedState(paused, singleStep bool)
	Paused() bool
}

// Stub is a GDB Remote Serial Protocol server for one CPU. It serves a
// single client connection at a time; the next connection is accepted
// only after the current one closes.
type Stub struct {
	CPU *cpu.CPU
	Mem MemoryPeeker
	Dbg DebugController

	mu           sync.Mutex
	conn         net.Conn
	awaitingStop bool
}

// New returns a Stub ready to serve cpu, reading memory through mem and
// steering dbg.
func New(c *cpu.CPU, mem MemoryPeeker, dbg DebugController) *Stub {
	return &Stub{CPU: c, Mem: mem, Dbg: dbg}
}

// ListenAndServe accepts client connections on addr until the listener
// errors or a client sends the 'k' (kill) command.
func (s *Stub) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return psxerr.Errorf("gdbstub: listen on %s: %v", addr, err)
	}
	defer ln.Close()

	for {
		conn, err := ln.Accept()
		if err != nil {
			return psxerr.Errorf("gdbstub: accept: %v", err)
		}
		logger.Logf("GDB", "client connected from %s", conn.RemoteAddr())
		shutdown := s.handleConn(conn)
		if shutdown {
			return nil
		}
	}
}

// Poll reports a pending continue/step stop to the attached client once
// the debugger has paused again. The run loop driving CPU.Step should
// call this once per step (or once per frame) so the client finds out
// promptly when a breakpoint or single step lands.
func (s *Stub) Poll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.awaitingStop || s.conn == nil || !s.Dbg.Paused() {
		return
	}
	s.awaitingStop = false
	s.send(s.conn, "S05")
}

func (s *Stub) handleConn(conn net.Conn) (shutdown bool) {
	defer conn.Close()
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.conn = nil
		s.mu.Unlock()
	}()

	r := bufio.NewReader(conn)
	for {
		body, interrupted, err := readPacket(r)
		if err != nil {
			if err != io.EOF {
				logger.Logf("GDB", "connection error: %v", err)
			}
			return false
		}
		if interrupted {
			logger.Log("GDB", "received interrupt from client")
			s.Dbg.SetPausedState(true, false)
			s.send(conn, "S02")
			continue
		}
		if body == "" {
			continue
		}

		reply, kill := s.dispatch(body)
		if reply != "" {
			s.send(conn, reply)
		}
		if kill {
			logger.Log("GDB", "client closed connection")
			return true
		}
	}
}

// readPacket consumes ack/nak noise and returns the next "$...#cc"
// packet's validated body, or reports a Ctrl-C break.
func readPacket(r *bufio.Reader) (body string, interrupted bool, err error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", false, err
		}
		switch b {
		case '+', '-':
			continue
		case ctrlC:
			return "", true, nil
		case '$':
			raw, err := r.ReadString('#')
			if err != nil {
				return "", false, err
			}
			bodyPart := strings.TrimSuffix(raw, "#")
			var csum [2]byte
			if _, err := io.ReadFull(r, csum[:]); err != nil {
				return "", false, err
			}
			if checksum(bodyPart) != string(csum[:]) {
				logger.Logf("GDB", "dropping packet with bad checksum %q", bodyPart)
				return "", false, nil
			}
			return bodyPart, false, nil
		default:
			continue
		}
	}
}

func (s *Stub) send(conn net.Conn, body string) {
	logger.Logf("GDB", "sending packet %q", body)
	if _, err := conn.Write([]byte(frame(body))); err != nil {
		logger.Logf("GDB", "write failed: %v", err)
	}
}

func (s *Stub) dispatch(body string) (reply string, kill bool) {
	cmd := body[0]
	params := body[1:]

	switch cmd {
	case '?':
		return "S02", false
	case 'q':
		return s.handleQuery(body), false
	case 'c':
		s.mu.Lock()
		s.awaitingStop = true
		s.mu.Unlock()
		s.Dbg.SetPausedState(false, false)
		return "", false
	case 's':
		s.mu.Lock()
		s.awaitingStop = true
		s.mu.Unlock()
		s.Dbg.SetPausedState(false, true)
		return "", false
	case 'g':
		return s.readRegisters(), false
	case 'G':
		// Writing the full register set back isn't implemented; GDB
		// only needs the "OK" to keep the session going.
		return "OK", false
	case 'k':
		return "", true
	case 'p':
		index, ok := parseHexUint32(params)
		if !ok {
			logger.Log("GDB", "failed to parse register index")
			return "E00", false
		}
		return s.readRegister(index), false
	case 'm':
		return s.readMemory(params), false
	case 'M':
		// Memory writes aren't implemented yet.
		return "OK", false
	case 'z', 'Z':
		return s.breakpoint(cmd, params), false
	default:
		logger.Logf("GDB", "unknown command %q", body)
		return "", false
	}
}

func (s *Stub) handleQuery(body string) string {
	switch {
	case strings.HasPrefix(body, "qSupported"):
		return "PacketSize=1024;qXfer:features:read+;qXfer:memory-map:read+"
	case strings.HasPrefix(body, "qXfer:features:read:target.xml:"):
		start, offset, ok := parseStartAndOffset(body)
		if !ok {
			return ""
		}
		return xferReply(mipsTargetXML, start, offset)
	case strings.HasPrefix(body, "qXfer:memory-map:read::"):
		start, offset, ok := parseStartAndOffset(body)
		if !ok {
			return ""
		}
		return xferReply(psxMemoryMapXML, start, offset)
	default:
		return ""
	}
}

// xferReply prefixes a qXfer chunk with 'm' (more data follows) or 'l'
// (this is the last chunk), as the wire protocol requires.
func xferReply(data string, start, offset int) string {
	chunk := xferSlice(data, start, offset)
	if start+len(chunk) >= len(data) {
		return "l" + chunk
	}
	return "m" + chunk
}

func (s *Stub) readRegisters() string {
	var b strings.Builder
	for _, r := range s.CPU.GP {
		b.WriteString(hexLE32(r))
	}
	b.WriteString(hexLE32(s.CPU.SR()))
	b.WriteString(hexLE32(s.CPU.LO))
	b.WriteString(hexLE32(s.CPU.HI))
	b.WriteString(hexLE32(s.CPU.BadVAddr()))
	b.WriteString(hexLE32(s.CPU.Cause()))
	b.WriteString(hexLE32(s.CPU.PC))
	for i := 0; i < gdbUnusedRegisters; i++ {
		b.WriteString("00000000")
	}
	return b.String()
}

func (s *Stub) readRegister(index uint32) string {
	switch {
	case index >= gdbUsedRegisters:
		return "00000000"
	case index < gpRegisterCount:
		return hexLE32(s.CPU.GP[index])
	default:
		switch index - gpRegisterCount {
		case 0:
			return hexLE32(s.CPU.SR())
		case 1:
			return hexLE32(s.CPU.LO)
		case 2:
			return hexLE32(s.CPU.HI)
		case 3:
			return hexLE32(s.CPU.BadVAddr())
		case 4:
			return hexLE32(s.CPU.Cause())
		case 5:
			return hexLE32(s.CPU.PC)
		default:
			return "00000000"
		}
	}
}

func (s *Stub) readMemory(params string) string {
	comma := strings.IndexByte(params, ',')
	if comma < 0 {
		return "E00"
	}
	address, ok := parseHexUint32(params[:comma])
	if !ok {
		logger.Log("GDB", "failed to parse memory address")
		return "E00"
	}
	length, ok := parseHexUint32(params[comma+1:])
	if !ok {
		logger.Log("GDB", "failed to parse memory length")
		return "E00"
	}

	var b strings.Builder
	for i := uint32(0); i < length; i++ {
		v := s.Mem.Peek(address + i)
		b.WriteString(hex.EncodeToString([]byte{v}))
	}
	return b.String()
}

func (s *Stub) breakpoint(cmd byte, params string) string {
	if len(params) < 1 || (params[0] != '0' && params[0] != '1') {
		logger.Logf("GDB", "unsupported breakpoint type in %q", params)
		return ""
	}
	if len(params) < 2 || params[len(params)-1] != '4' {
		logger.Logf("GDB", "unsupported breakpoint size in %q", params)
		return ""
	}
	if len(params) < 5 {
		return "E00"
	}

	address, ok := parseHexUint32(params[2 : len(params)-2])
	if !ok {
		logger.Log("GDB", "failed to parse breakpoint address")
		return "E00"
	}

	if cmd == 'Z' {
		s.Dbg.AddBreakpoint(address)
	} else {
		s.Dbg.RemoveBreakpoint(address)
	}
	return "OK"
}
