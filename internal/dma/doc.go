// Package dma implements the seven-channel PSX DMA controller: MDECin,
// MDECout, GPU, CDROM, SPU, PIO and OTC, each running in Manual, Request or
// LinkedList sync mode over a shared RAM port.
//
// The packed control-register bitfields reuse internal/bitfield the same
// way the rest of this module's hardware packages expose small per-field
// accessors over a raw register word.
package dma
