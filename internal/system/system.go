package system

import (
	"github.com/nwidger/psxcore/internal/bios"
	"github.com/nwidger/psxcore/internal/bus"
	"github.com/nwidger/psxcore/internal/cpu"
	"github.com/nwidger/psxcore/internal/debugger"
	"github.com/nwidger/psxcore/internal/devicestub"
	"github.com/nwidger/psxcore/internal/dma"
	"github.com/nwidger/psxcore/internal/gdbstub"
	"github.com/nwidger/psxcore/internal/irq"
	"github.com/nwidger/psxcore/internal/logger"
	"github.com/nwidger/psxcore/internal/scheduler"
	"github.com/nwidger/psxcore/internal/timer"
)

// cyclesPerStep is the fixed cost charged to the scheduler after every
// CPU instruction. It isn't a faithful per-instruction cycle count, but a
// flat approximation close enough to keep the timers and DMA's
// chopped-transfer pacing in the right ballpark.
const cyclesPerStep = 2

// System owns every core component and the wiring between them. Build one
// with New, optionally attach a GDB stub with EnableGDB, load a BIOS
// image, then drive it with Step or RunFrame.
type System struct {
	Bus        *bus.Bus
	CPU        *cpu.CPU
	Debugger   *debugger.Debugger
	DMA        *dma.Controller
	Timers     *timer.Controller
	IRQ        *irq.Controller
	Scheduler  *scheduler.Scheduler
	GPU        *devicestub.GPU
	CDROM      *devicestub.CDROM
	GDB        *gdbstub.Stub
	GDBConsole *gdbstub.Console
}

// New constructs every component and wires the whole graph: bus ports,
// DMA/timer IRQ lines, the CPU's bus and debug hook, and the timer
// component registered with the scheduler.
func New() *System {
	s := &System{
		Bus:       bus.New(),
		CPU:       cpu.New(),
		Debugger:  debugger.New(),
		DMA:       dma.New(),
		Timers:    timer.New(),
		IRQ:       irq.New(),
		Scheduler: scheduler.New(),
		GPU:       devicestub.NewGPU(),
		CDROM:     devicestub.NewCDROM(),
	}

	s.IRQ.CPU = s.CPU

	s.DMA.Mem = s.Bus
	s.DMA.GPUDevice = s.GPU
	s.DMA.IRQ = dmaIRQAdapter{irq: s.IRQ}
	s.DMA.Scheduler = s.Scheduler

	s.Timers.IRQ = timerIRQAdapter{irq: s.IRQ}

	s.Bus.AttachIRQ(s.IRQ)
	s.Bus.AttachDMA(dmaPort{dma: s.DMA})
	s.Bus.AttachTimers(s.Timers)
	s.Bus.AttachGPU(s.GPU)
	s.Bus.AttachCDROM(s.CDROM)

	s.Scheduler.AddComponent(scheduler.Component{
		Name:                 "timers",
		Update:               s.Timers.Step,
		CyclesUntilNextEvent: s.Timers.CyclesUntilNextEvent,
	})

	s.CPU.Bus = s.Bus
	s.CPU.Debug = s.Debugger

	return s
}

// LoadBIOS reads a BIOS image from path (through internal/bios, advisory
// file-locked) and installs it on the bus.
func (s *System) LoadBIOS(path string) error {
	data, err := bios.Load(path)
	if err != nil {
		return err
	}
	return s.Bus.LoadBIOS(data)
}

// InjectPSEXE reads a PS-EXE file, copies its body into RAM at its load
// address, and redirects the CPU to its entry point with a clean
// pipeline, as if a BIOS "exec" shell command had just run it.
func (s *System) InjectPSEXE(path string) error {
	exe, err := bios.LoadPSEXE(path)
	if err != nil {
		return err
	}
	s.Bus.LoadProgram(exe.LoadAddress, exe.Data)
	s.CPU.InjectEntryPoint(exe.EntryPoint)
	logger.Logf("SYSTEM", "injected PS-EXE %s at %#08x, entry %#08x", path, exe.LoadAddress, exe.EntryPoint)
	return nil
}

// EnableGDB starts a GDB Remote Serial Protocol stub listening on addr in
// the background. Step calls the stub's Poll after every instruction to
// report continue/step completion back to the client.
func (s *System) EnableGDB(addr string) *gdbstub.Stub {
	s.GDB = gdbstub.New(s.CPU, s.Bus, s.Debugger)
	go func() {
		if err := s.GDB.ListenAndServe(addr); err != nil {
			logger.Logf("GDB", "stub stopped: %v", err)
		}
	}()
	return s.GDB
}

// Step executes one CPU instruction, advances every scheduled component
// by its cycle cost, and reports a pending GDB stop if one is attached.
func (s *System) Step() error {
	if err := s.CPU.Step(); err != nil {
		return err
	}
	s.Scheduler.AddCycles(cyclesPerStep)
	if s.GDB != nil {
		s.GDB.Poll()
	}
	return nil
}

// cyclesPerFrame is one NTSC video frame's worth of CPU cycles at the
// PSX's ~33.8688 MHz system clock (33868800 / 60).
const cyclesPerFrame = 564480

// RunFrame steps the CPU until roughly one frame's worth of cycles have
// elapsed or the CPU halts (a debugger breakpoint or single step).
func (s *System) RunFrame() error {
	for budget := uint32(0); budget < cyclesPerFrame; budget += cyclesPerStep {
		if s.CPU.Halt {
			return nil
		}
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}
