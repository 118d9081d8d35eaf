package dma

import (
	"github.com/nwidger/psxcore/internal/bitfield"
	"github.com/nwidger/psxcore/internal/psxerr"
)

// Channel identifies one of the seven fixed DMA channels.
type Channel uint32

const (
	MDECin Channel = iota
	MDECout
	GPU
	CDROM
	SPU
	PIO
	OTC
)

// SyncMode selects how a channel's block-count fields are interpreted and
// how the transfer loop is driven.
type SyncMode uint32

const (
	SyncManual SyncMode = iota
	SyncRequest
	SyncLinkedList
)

// Direction is the transfer direction between RAM and the channel's device.
type Direction uint32

const (
	ToRAM Direction = iota
	ToDevice
)

// Step is the per-word RAM address increment direction.
type Step uint32

const (
	StepInc Step = iota
	StepDec
)

const addrMask = 0x1F_FFFC

var (
	bcrWordCount  = bitfield.Field[uint32]{Offset: 0, Width: 16}
	bcrBlockSize  = bitfield.Field[uint32]{Offset: 0, Width: 16}
	bcrBlockCount = bitfield.Field[uint32]{Offset: 16, Width: 16}

	ctrlSyncMode = bitfield.Field[uint32]{Offset: 9, Width: 2}
)

const (
	ctrlDirectionBit = 0
	ctrlStepBit      = 1
	ctrlChopEnable   = 8
	ctrlStartBusy    = 24
	ctrlStartTrigger = 28
	ctrlPause        = 29
)

// channelState holds one DMA channel's three MMIO registers.
type channelState struct {
	baseAddress uint32
	bcr         uint32
	control     uint32
}

func (c *channelState) ready() bool {
	syncMode := SyncMode(ctrlSyncMode.Get(c.control))
	trigger := syncMode != SyncManual || bitfield.Bool(c.control, ctrlStartTrigger)
	return bitfield.Bool(c.control, ctrlStartBusy) && trigger
}

const (
	writeMask    = 0x00FF_803F
	resetAckMask = 0x7F00_0000
)

var (
	dicrForceIRQ   = bitfield.Field[uint32]{Offset: 15, Width: 1}
	dicrIRQEnable  = bitfield.Field[uint32]{Offset: 16, Width: 7}
	dicrIRQMEnable = bitfield.Field[uint32]{Offset: 23, Width: 1}
	dicrIRQFlag    = bitfield.Field[uint32]{Offset: 24, Width: 7}
)

// Controller is the seven-channel DMA controller.
type Controller struct {
	channel [7]channelState

	control   uint32 // DPCR, channel priorities
	interrupt uint32 // DICR

	Mem       MemPort
	GPUDevice GPUPort
	IRQ       IRQRequester
	Scheduler SchedulerPort
}

// New returns a Controller in its power-on state. Wire Mem/GPUDevice/IRQ/
// Scheduler before use (-phase construction).
func New() *Controller {
	c := &Controller{}
	c.Reset()
	return c
}

// Reset restores power-on register state.
func (c *Controller) Reset() {
	for i := range c.channel {
		c.channel[i] = channelState{}
	}
	c.control = 0x0765_4321
	c.interrupt = 0
}

// Load reads a DMA register at address, relative to the DMA block's base.
func (c *Controller) Load(address uint32) uint32 {
	switch address {
	case 0x70:
		return c.control
	case 0x74:
		return c.interrupt
	}

	idx := (address & 0x70) >> 4
	reg := address & 0xF
	if idx >= 7 {
		return 0
	}
	ch := &c.channel[idx]
	switch reg {
	case 0x0:
		return ch.baseAddress
	case 0x4:
		return ch.bcr
	case 0x8:
		return ch.control
	}
	return 0
}

// Peek is Load without side effects; the DMA register block has none, so
// it is identical to Load.
func (c *Controller) Peek(address uint32) uint32 {
	return c.Load(address)
}

// Store writes a DMA register at address. A write to a channel's control
// register that leaves it ready starts the transfer synchronously.
func (c *Controller) Store(address uint32, value uint32) error {
	switch address {
	case 0x70:
		c.control = value
		return nil
	case 0x74:
		c.interrupt = (c.interrupt &^ writeMask) | (value & writeMask)
		c.interrupt &^= value & resetAckMask
		c.updateMasterFlag()
		return nil
	}

	idx := (address & 0x70) >> 4
	reg := address & 0xF
	if idx >= 7 {
		return psxerr.Errorf("dma: invalid channel index (address %#x)", address)
	}
	ch := &c.channel[idx]
	switch reg {
	case 0x0:
		ch.baseAddress = value & 0xFF_FFFF
		return nil
	case 0x4:
		ch.bcr = value
		return nil
	case 0x8:
		ch.control = value
		if ch.ready() {
			return c.startTransfer(Channel(idx))
		}
		return nil
	}
	return psxerr.Errorf("dma: invalid DMA register (address %#x)", address)
}

func (c *Controller) startTransfer(idx Channel) error {
	ch := &c.channel[idx]
	syncMode := SyncMode(ctrlSyncMode.Get(ch.control))

	var err error
	switch syncMode {
	case SyncLinkedList:
		err = c.transferLinkedList(idx)
	case SyncManual, SyncRequest:
		err = c.transferBlock(idx)
	}
	if err != nil {
		return err
	}

	if bitfield.Bool(c.interrupt, 23) && dicrIRQEnable.Get(c.interrupt)&(1<<uint32(idx)) != 0 {
		c.interrupt |= 1 << (24 + uint32(idx))
	}

	previous := bitfield.Bool(c.interrupt, 31)
	c.updateMasterFlag()
	if bitfield.Bool(c.interrupt, 31) && !previous {
		if c.IRQ != nil {
			c.IRQ.Request(DMAIRQ)
		}
	}
	return nil
}

func cyclesForTransfer(idx Channel, count uint32) uint32 {
	switch idx {
	case CDROM:
		return (count * 0x2800) / 0x100
	case SPU:
		return (count * 0x0420) / 0x100
	default:
		return (count * 0x0110) / 0x100
	}
}

func (c *Controller) transferBlock(idx Channel) error {
	ch := &c.channel[idx]
	step := int32(4)
	if bitfield.Bool(ch.control, ctrlStepBit) {
		step = -4
	}

	var transferCount uint32
	syncMode := SyncMode(ctrlSyncMode.Get(ch.control))
	switch syncMode {
	case SyncManual:
		transferCount = bcrWordCount.Get(ch.bcr)
		if transferCount == 0 {
			transferCount = 0x10000
		}
	case SyncRequest:
		transferCount = bcrBlockCount.Get(ch.bcr) * bcrBlockSize.Get(ch.bcr)
	default:
		return psxerr.Errorf("dma: invalid sync mode for block transfer (channel %d)", idx)
	}

	total := transferCount
	addr := ch.baseAddress
	direction := ToRAM
	if bitfield.Bool(ch.control, ctrlDirectionBit) {
		direction = ToDevice
	}

	for transferCount > 0 {
		curr := addr & addrMask
		var data uint32
		switch direction {
		case ToRAM:
			switch idx {
			case GPU:
				if c.GPUDevice != nil {
					c.GPUDevice.SendGP0(0xFF)
					data = c.GPUDevice.ReadData()
				}
			case OTC:
				if transferCount == 1 {
					data = 0xFFFFFF
				} else {
					data = (addr - 4) & 0x1F_FFFF
				}
			default:
				return psxerr.Errorf("dma: unimplemented hardware path (channel %d, direction ToRAM)", idx)
			}
			if c.Mem != nil {
				if err := c.Mem.Store32(curr, data); err != nil {
					return err
				}
			}
		case ToDevice:
			if c.Mem != nil {
				var err error
				data, err = c.Mem.Load32(curr)
				if err != nil {
					return err
				}
			}
			switch idx {
			case GPU:
				if c.GPUDevice != nil {
					c.GPUDevice.SendGP0(data)
				}
			default:
				return psxerr.Errorf("dma: unimplemented hardware path (channel %d, direction ToDevice)", idx)
			}
		}

		addr = uint32(int64(addr) + int64(step))
		transferCount--
	}

	ch.control &^= 1 << ctrlStartBusy
	ch.control &^= 1 << ctrlStartTrigger

	if c.Scheduler != nil {
		c.Scheduler.AddCycles(cyclesForTransfer(idx, total))
	}
	return nil
}

func (c *Controller) transferLinkedList(idx Channel) error {
	ch := &c.channel[idx]
	direction := ToRAM
	if bitfield.Bool(ch.control, ctrlDirectionBit) {
		direction = ToDevice
	}
	if idx != GPU || direction == ToRAM {
		return psxerr.Errorf("dma: linked-list mode only valid for the GPU channel in ToDevice direction (channel %d)", idx)
	}

	addr := ch.baseAddress & addrMask
	var total uint32

	for {
		if c.Mem == nil {
			break
		}
		header, err := c.Mem.Load32(addr)
		if err != nil {
			return err
		}
		size := header >> 24

		for size > 0 {
			addr = (addr + 4) & addrMask
			word, err := c.Mem.Load32(addr)
			if err != nil {
				return err
			}
			if c.GPUDevice != nil {
				c.GPUDevice.SendGP0(word)
			}
			size--
		}
		total += header >> 24

		if header&0x80_0000 != 0 {
			break
		}
		addr = header & addrMask
	}

	ch.control &^= 1 << ctrlStartBusy
	ch.control &^= 1 << ctrlStartTrigger

	if c.Scheduler != nil {
		c.Scheduler.AddCycles(cyclesForTransfer(idx, total))
	}
	return nil
}

func (c *Controller) updateMasterFlag() {
	master := bitfield.Bool(c.interrupt, 15) ||
		(bitfield.Bool(c.interrupt, 23) && dicrIRQEnable.Get(c.interrupt)&dicrIRQFlag.Get(c.interrupt) != 0)
	c.interrupt = bitfield.SetBool(c.interrupt, 31, master)
}
