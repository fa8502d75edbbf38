package clock

// PhaseSink receives the low 2 bits of the phase counter whenever the
// sequencer emits a step. Implementations own the read-modify-write of any
// wider output port they share with other functions; only bits 0-1 are
// significant. SetPhase is called from the tick path and must not block for
// longer than a tick period.
type PhaseSink interface {
	SetPhase(phase uint8)
}

// Sequencer divides the fixed hardware tick down to the motor step rate and
// drives the 2-bit phase sequence. It stands in for the timer compare-match
// interrupt handler of the reference hardware: Tick must only ever be called
// from a single goroutine, which gives it the same strictly-serialized,
// non-reentrant execution the interrupt flag gives the original.
type Sequencer struct {
	state *State
	sink  PhaseSink

	ticks uint16
	phase uint8
}

func NewSequencer(state *State, sink PhaseSink) *Sequencer {
	return &Sequencer{state: state, sink: sink}
}

// Tick handles one timer tick. Once more ticks have elapsed than the current
// rate threshold, the tick counter resets and the phase counter moves one
// step: Forward decrements, Reverse increments. Wraparound is plain two's
// complement; only the low 2 bits leave the core. Below the threshold
// nothing happens at all, which is what sub-divides the tick rate into the
// step rate.
func (s *Sequencer) Tick() {
	s.ticks++
	if uint32(s.ticks) <= s.state.Rate() {
		return
	}
	s.ticks = 0
	if s.state.Direction() == Forward {
		s.phase--
	} else {
		s.phase++
	}
	s.sink.SetPhase(s.phase & 0x03)
}

// Phase returns the current 2-bit phase value.
func (s *Sequencer) Phase() uint8 {
	return s.phase & 0x03
}
