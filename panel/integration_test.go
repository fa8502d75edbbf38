package panel

import (
	"testing"

	"github.com/w1xm/stepclock/clock"
)

// Drives the sequencer and arbiter against the simulated panel and checks
// the whole chain: button levels through rate arbitration through the drive
// sequence to rotor steps.
func TestDriverAgainstSimulator(t *testing.T) {
	sim := NewSimulator()
	state := clock.NewState()
	seq := clock.NewSequencer(state, sim)
	arb := clock.NewArbiter(state, sim)

	// Fast-forward held: one step per tick.
	sim.Press(FastForward)
	arb.Poll()
	for i := 0; i < 100; i++ {
		seq.Tick()
	}
	if got := sim.Steps(); got != 100 {
		t.Errorf("got %d steps, want 100", got)
	}

	// Swap to fast-reverse: steps unwind.
	sim.Release(FastForward)
	sim.Press(FastReverse)
	arb.Poll()
	for i := 0; i < 40; i++ {
		seq.Tick()
	}
	if got := sim.Steps(); got != 60 {
		t.Errorf("got %d steps after reversing, want 60", got)
	}

	// Released: back to normal forward, one step per three ticks.
	sim.Release(FastReverse)
	arb.Poll()
	for i := 0; i < 30; i++ {
		seq.Tick()
	}
	if got := sim.Steps(); got != 70 {
		t.Errorf("got %d steps at normal rate, want 70", got)
	}

	if got := sim.Glitches(); got != 0 {
		t.Errorf("drive sequence glitched %d times", got)
	}
}
