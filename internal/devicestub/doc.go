// Package devicestub provides Null implementations of the external GPU
// and CD-ROM collaborators the bus and DMA controller expect to be wired
// to. The PSX's actual GPU rasterizer and CD-ROM state machine are out of
// scope; these stand in so the bus and DMA controller always have
// something to dispatch GP0/GP1 traffic and the CD-ROM MMIO window to,
// whether the caller is a test or a headless cmd/psxcore run with no
// real video/disc backend attached.
package devicestub
