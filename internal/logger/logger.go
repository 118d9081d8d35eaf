package logger

import (
	"fmt"
	"io"
	"sync"
)

type entry struct {
	tag     string
	message string
}

var (
	mu  sync.Mutex
	log []entry
)

// Log appends a new entry to the log. Safe for concurrent use although the
// core itself is single-threaded; the GDB stub's network goroutine is the
// one caller that is not.
func Log(tag, message string) {
	mu.Lock()
	defer mu.Unlock()
	log = append(log, entry{tag: tag, message: message})
}

// Logf is a convenience wrapper around Log with fmt.Sprintf formatting.
func Logf(tag, format string, args ...interface{}) {
	Log(tag, fmt.Sprintf(format, args...))
}

// Write dumps the entire log to w.
func Write(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	for _, e := range log {
		fmt.Fprintf(w, "%s: %s\n", e.tag, e.message)
	}
}

// Tail writes the most recent n entries to w. Asking for more entries than
// exist is not an error.
func Tail(w io.Writer, n int) {
	mu.Lock()
	defer mu.Unlock()
	if n > len(log) {
		n = len(log)
	}
	for _, e := range log[len(log)-n:] {
		fmt.Fprintf(w, "%s: %s\n", e.tag, e.message)
	}
}

// Clear empties the log.
func Clear() {
	mu.Lock()
	defer mu.Unlock()
	log = nil
}
