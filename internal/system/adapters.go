package system

import (
	"github.com/nwidger/psxcore/internal/dma"
	"github.com/nwidger/psxcore/internal/irq"
	"github.com/nwidger/psxcore/internal/logger"
	"github.com/nwidger/psxcore/internal/timer"
)

// dmaPort adapts *dma.Controller to bus.DMAPort: the bus's MMIO contract
// has no error return, while a DMA register write can fail (an
// out-of-range channel index, an invalid sync mode), so failures are
// logged instead of surfaced to the CPU.
type dmaPort struct{ dma *dma.Controller }

func (p dmaPort) Load(offset uint32) uint32 { return p.dma.Load(offset) }

func (p dmaPort) Store(offset uint32, value uint32) {
	if err := p.dma.Store(offset, value); err != nil {
		logger.Logf("DMA", "%v", err)
	}
}

// dmaIRQAdapter translates dma.IRQSource, the DMA controller's own
// single-member interrupt enumeration, into the shared irq.Source bit the
// interrupt controller latches.
type dmaIRQAdapter struct{ irq *irq.Controller }

func (a dmaIRQAdapter) Request(source dma.IRQSource) {
	if source == dma.DMAIRQ {
		a.irq.Request(irq.DMA)
	}
}

// timerIRQAdapter translates timer.IRQSource into irq.Source. The two
// enumerations happen to share bit positions (both index the same 11-bit
// status word), but the conversion is spelled out rather than relying on
// that coincidence at every call site.
type timerIRQAdapter struct{ irq *irq.Controller }

func (a timerIRQAdapter) Request(source timer.IRQSource) {
	a.irq.Request(irq.Source(source))
}
