package devicestub

// gpuReadyMask sets the GPUSTAT bits DMA and CPU polling loops wait on
// before issuing a command or transfer: ready for a GP0 command word
// (bit 26), ready to send VRAM data to the CPU (bit 27), and ready to
// receive a DMA block (bit 28). A real rasterizer clears these while
// busy; this stub is never busy.
const gpuReadyMask = 1<<26 | 1<<27 | 1<<28

// GPU is a Null external GPU: it records the last GP0/GP1 command words
// submitted to it and always reports ready, so nothing waiting on GPUSTAT
// ever stalls. It satisfies both bus.GPUPort and dma.GPUPort.
type GPU struct {
	LastGP0 uint32
	LastGP1 uint32
}

// NewGPU returns a GPU stub in its idle, always-ready state.
func NewGPU() *GPU {
	return &GPU{}
}

// SendGP0 records a rendering/data command word.
func (g *GPU) SendGP0(word uint32) { g.LastGP0 = word }

// SendGP1 records a display-control command word.
func (g *GPU) SendGP1(word uint32) { g.LastGP1 = word }

// ReadStat reports the always-ready status word.
func (g *GPU) ReadStat() uint32 { return gpuReadyMask }

// ReadData returns zero: no VRAM read-back is modeled.
func (g *GPU) ReadData() uint32 { return 0 }
