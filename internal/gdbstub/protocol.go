package gdbstub

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"strings"
)

// gpRegisterCount is the number of general-purpose registers GDB's MIPS
// register list starts with; gdbUsedRegisters is how many of the 73
// registers GDB's generic MIPS layout expects actually carry real state
// here (the remaining 35 are FPU padding: the PSX has no FPU).
const (
	gpRegisterCount   = 32
	gdbUsedRegisters  = 38
	gdbUnusedRegisters = 35
)

// hexLE32 hex-encodes a little-endian uint32, matching how GDB expects
// target register and memory bytes on the wire.
func hexLE32(v uint32) string {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return hex.EncodeToString(b[:])
}

// checksum computes the RSP packet checksum: the sum of all body bytes,
// mod 256, as two lowercase hex digits.
func checksum(body string) string {
	var sum byte
	for i := 0; i < len(body); i++ {
		sum += body[i]
	}
	return hex.EncodeToString([]byte{sum})
}

// frame wraps a reply payload in the "$<body>#<checksum>" envelope, with
// the leading '+' ack GDB expects before the '$'.
func frame(body string) string {
	return "+$" + body + "#" + checksum(body)
}

// parseHexUint32 parses a hex string (no "0x" prefix) into a uint32,
// reporting failure the same way a malformed RSP parameter would.
func parseHexUint32(s string) (uint32, bool) {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

// parseStartAndOffset splits a qXfer request on its last ':' and last
// ',' to recover the (start, offset) pair used for chunked reads, e.g.
// "qXfer:features:read:target.xml:0,3fb".
func parseStartAndOffset(packet string) (start, offset int, ok bool) {
	colon := strings.LastIndexByte(packet, ':')
	comma := strings.LastIndexByte(packet, ',')
	if colon < 0 || comma < 0 || comma <= colon {
		return 0, 0, false
	}
	s, err := strconv.ParseInt(packet[colon+1:comma], 16, 64)
	if err != nil {
		return 0, 0, false
	}
	o, err := strconv.ParseInt(packet[comma+1:], 16, 64)
	if err != nil {
		return 0, 0, false
	}
	return int(s), int(o), true
}

// xferSlice returns the requested [start, start+offset) window of data,
// clamped to its bounds, the way GDB's chunked qXfer reads expect.
func xferSlice(data string, start, offset int) string {
	if start < 0 || start >= len(data) {
		return ""
	}
	end := start + offset
	if end > len(data) {
		end = len(data)
	}
	return data[start:end]
}
