package scheduler

// MaxCycles is the sentinel a Component.CyclesUntilNextEvent returns when
// it has nothing scheduled of its own.
const MaxCycles = ^uint32(0)

// Component is anything the scheduler drives forward in lockstep. In this
// module the system registers one component, the timer block, at startup.
type Component struct {
	Name                string
	Update              func(cycles uint32)
	CyclesUntilNextEvent func() uint32
}

// Scheduler is the accumulator-based cooperative scheduler. Cycles
// charged against it via AddCycles are only handed to components up to
// the nearest event boundary at a time, so a component that fires an
// interrupt mid-batch is observed by every other component at the
// correct cycle rather than after the whole batch has elapsed.
type Scheduler struct {
	components []Component

	cycles              uint32
	cyclesUntilNextEvent uint32
}

// New returns an empty Scheduler. Register every Component before driving
// it with AddCycles.
func New() *Scheduler {
	s := &Scheduler{}
	s.Reset()
	return s
}

// Reset clears the pending-cycle accumulator. It does not forget
// registered components.
func (s *Scheduler) Reset() {
	s.cycles = 0
	s.cyclesUntilNextEvent = MaxCycles
}

// AddComponent registers a component to be driven by future AddCycles
// calls. Components are updated in registration order on every drain,
// a guarantee callers may depend on.
func (s *Scheduler) AddComponent(c Component) {
	s.components = append(s.components, c)
}

// AddCycles charges cycles of execution against the accumulator, draining
// it in increments no larger than the nearest component's next event
// boundary, recalculating that boundary after each drain.
func (s *Scheduler) AddCycles(cycles uint32) {
	s.cycles += cycles

	for s.cycles >= s.cyclesUntilNextEvent {
		if s.cyclesUntilNextEvent > 0 {
			s.updateComponents(s.cyclesUntilNextEvent)
			s.cycles -= s.cyclesUntilNextEvent
		}
		s.RecalculateNextEvent()
	}
}

// ForceUpdate drains any cycles accumulated so far, regardless of where
// the next event boundary lies. MMIO reads/writes that need to observe
// up-to-the-instant component state call this before touching registers.
func (s *Scheduler) ForceUpdate() {
	if s.cycles > 0 {
		s.updateComponents(s.cycles)
		s.cycles = 0
	}
}

func (s *Scheduler) updateComponents(cyclesToUpdate uint32) {
	for _, c := range s.components {
		c.Update(cyclesToUpdate)
	}
}

// RecalculateNextEvent re-polls every component for its next event
// boundary. Callers that mutate a component's registers directly (rather
// than through AddCycles) must call this afterward so the cached boundary
// stays accurate.
func (s *Scheduler) RecalculateNextEvent() {
	s.cyclesUntilNextEvent = MaxCycles
	for _, c := range s.components {
		if v := c.CyclesUntilNextEvent(); v < s.cyclesUntilNextEvent {
			s.cyclesUntilNextEvent = v
		}
	}
}
