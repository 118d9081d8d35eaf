// Package logger is a process-local, append-only log used by the core for
// diagnostic trails (bus expansion-region accesses, CPU anomalies, failed
// DMA register writes, GDB stub activity)
// that a host frontend may want to surface without the core depending on any
// particular UI.
package logger
