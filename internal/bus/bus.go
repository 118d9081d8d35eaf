package bus

import (
	"fmt"

	"github.com/nwidger/psxcore/internal/logger"
	"github.com/nwidger/psxcore/internal/psxerr"
)

// Bus is the PSX address router. It uniquely owns RAM, scratchpad and BIOS
// storage and holds non-owning references to the IO device collaborators,
// wired in a second construction phase.
type Bus struct {
	RAM        [ramSize]byte
	Scratchpad [scratchpadSize]byte
	BIOS       [biosSize]byte
	biosLoaded bool

	IRQ    IRQPort
	DMA    DMAPort
	Timers TimerPort
	GPU    GPUPort
	CDROM  CDROMPort
}

// New returns an unwired Bus. Call the Attach* setters before use.
func New() *Bus {
	return &Bus{}
}

// AttachIRQ wires the interrupt controller's MMIO surface.
func (b *Bus) AttachIRQ(p IRQPort) { b.IRQ = p }

// AttachDMA wires the DMA controller's MMIO surface.
func (b *Bus) AttachDMA(p DMAPort) { b.DMA = p }

// AttachTimers wires the timer block's MMIO surface.
func (b *Bus) AttachTimers(p TimerPort) { b.Timers = p }

// AttachGPU wires the external GPU collaborator.
func (b *Bus) AttachGPU(p GPUPort) { b.GPU = p }

// AttachCDROM wires the external CD-ROM collaborator.
func (b *Bus) AttachCDROM(p CDROMPort) { b.CDROM = p }

// LoadBIOS installs a 512 KiB BIOS image. BIOS memory is never mutated
// again after this call.
func (b *Bus) LoadBIOS(data []byte) error {
	if len(data) != biosSize {
		return psxerr.Errorf("bus: bios image must be exactly %d bytes, got %d", biosSize, len(data))
	}
	copy(b.BIOS[:], data)
	b.biosLoaded = true
	return nil
}

// BusFault is raised when an access targets no known region. It is a
// host-visible error, not a guest exception.
type BusFault struct {
	Address uint32
}

func (e *BusFault) Error() string {
	return fmt.Sprintf("bus: invalid physical address %#08x", e.Address)
}

// Load32 reads a 32-bit word at addr.
func (b *Bus) Load32(addr uint32) (uint32, error) {
	phys := Translate(addr)
	lo, err := b.loadByte(phys)
	if err != nil {
		return 0, err
	}
	b1, _ := b.loadByte(phys + 1)
	b2, _ := b.loadByte(phys + 2)
	b3, _ := b.loadByte(phys + 3)
	return uint32(lo) | uint32(b1)<<8 | uint32(b2)<<16 | uint32(b3)<<24, nil
}

// Load16 reads a 16-bit halfword at addr.
func (b *Bus) Load16(addr uint32) (uint16, error) {
	phys := Translate(addr)
	lo, err := b.loadByte(phys)
	if err != nil {
		return 0, err
	}
	hi, _ := b.loadByte(phys + 1)
	return uint16(lo) | uint16(hi)<<8, nil
}

// Load8 reads a byte at addr.
func (b *Bus) Load8(addr uint32) (uint8, error) {
	return b.loadByte(Translate(addr))
}

// Store32 writes a 32-bit word at addr.
func (b *Bus) Store32(addr uint32, value uint32) error {
	phys := Translate(addr)
	if err := b.storeWord(phys, value); err != nil {
		return err
	}
	return nil
}

// Store16 writes a 16-bit halfword at addr.
func (b *Bus) Store16(addr uint32, value uint16) error {
	return b.storeHalf(Translate(addr), value)
}

// Store8 writes a byte at addr.
func (b *Bus) Store8(addr uint32, value uint8) error {
	return b.storeByte(Translate(addr), value)
}

// LoadProgram copies a side-loaded PS-EXE body directly into RAM at addr,
// bypassing the IO/MMIO dispatch a regular Store8 loop would go through.
func (b *Bus) LoadProgram(addr uint32, data []byte) {
	phys := Translate(addr)
	for i, v := range data {
		dst := phys + uint32(i)
		if inRange(dst, ramBase, ramSize) {
			b.RAM[(dst-ramBase)%ramSize] = v
		}
	}
}

// Peek reads a byte without side effects, for debugger surfaces. Unlike
// Load8, it never dispatches to IO registers: it reads RAM, scratchpad and
// BIOS storage directly and returns 0 for every other address, IO
// registers included.
func (b *Bus) Peek(addr uint32) uint8 {
	phys := Translate(addr)
	switch {
	case inRange(phys, ramBase, ramSize):
		return b.RAM[(phys-ramBase)%ramSize]
	case inRange(phys, scratchpadBase, scratchpadSize):
		return b.Scratchpad[phys-scratchpadBase]
	case inRange(phys, biosBase, biosSize):
		return b.BIOS[phys-biosBase]
	default:
		return 0
	}
}

func (b *Bus) loadByte(phys uint32) (uint8, error) {
	switch {
	case inRange(phys, ramBase, ramSize):
		return b.RAM[(phys-ramBase)%ramSize], nil
	case inRange(phys, scratchpadBase, scratchpadSize):
		return b.Scratchpad[phys-scratchpadBase], nil
	case inRange(phys, ioBase, ioSize):
		return b.loadIOByte(phys - ioBase), nil
	case inRange(phys, biosBase, biosSize):
		return b.BIOS[phys-biosBase], nil
	case inRange(phys, cacheCtrlBase, cacheCtrlSize):
		return 0, nil
	case inRange(phys, exp1Base, exp1Size):
		logger.Logf("BUS", "read from expansion region 1 at %#08x", phys)
		return 0xFF, nil
	case inRange(phys, exp2Base, exp2Size):
		logger.Logf("BUS", "read from expansion region 2 at %#08x", phys)
		return 0, nil
	case inRange(phys, exp3Base, exp3Size):
		logger.Logf("BUS", "read from expansion region 3 at %#08x", phys)
		return 0, nil
	default:
		return 0, &BusFault{Address: phys}
	}
}

func (b *Bus) storeByte(phys uint32, value uint8) error {
	switch {
	case inRange(phys, ramBase, ramSize):
		b.RAM[(phys-ramBase)%ramSize] = value
		return nil
	case inRange(phys, scratchpadBase, scratchpadSize):
		b.Scratchpad[phys-scratchpadBase] = value
		return nil
	case inRange(phys, ioBase, ioSize):
		b.storeIOByte(phys-ioBase, value)
		return nil
	case inRange(phys, biosBase, biosSize):
		return nil // BIOS is read-only at runtime
	case inRange(phys, cacheCtrlBase, cacheCtrlSize):
		return nil
	case inRange(phys, exp1Base, exp1Size):
		return psxerr.Errorf("bus: unimplemented hardware path: write to expansion region 1 at %#08x", phys)
	case inRange(phys, exp2Base, exp2Size):
		logger.Logf("BUS", "write to expansion region 2 at %#08x", phys)
		return nil
	case inRange(phys, exp3Base, exp3Size):
		logger.Logf("BUS", "write to expansion region 3 at %#08x", phys)
		return nil
	default:
		return &BusFault{Address: phys}
	}
}

func (b *Bus) storeHalf(phys uint32, value uint16) error {
	if err := b.storeByte(phys, uint8(value)); err != nil {
		return err
	}
	return b.storeByte(phys+1, uint8(value>>8))
}

func (b *Bus) storeWord(phys uint32, value uint32) error {
	if err := b.storeByte(phys, uint8(value)); err != nil {
		return err
	}
	_ = b.storeByte(phys+1, uint8(value>>8))
	_ = b.storeByte(phys+2, uint8(value>>16))
	_ = b.storeByte(phys+3, uint8(value>>24))
	return nil
}
