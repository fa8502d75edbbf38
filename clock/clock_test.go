package clock

import (
	"context"
	"testing"
)

func TestClockStepAccounting(t *testing.T) {
	var statuses []Status
	buttons := &fakeButtons{}
	sink := &recordingSink{}
	c := New(DefaultTimer, buttons, sink, func(s Status) {
		statuses = append(statuses, s)
	})

	// Normal forward: nine ticks, three steps.
	for i := 0; i < 9; i++ {
		c.seq.Tick()
	}
	st := c.Status()
	if st.Steps != 3 {
		t.Errorf("got %d steps, want 3", st.Steps)
	}
	if st.Phase != 1 {
		t.Errorf("got phase %d, want 1", st.Phase)
	}
	if st.Fast {
		t.Error("reported fast at the normal rate")
	}

	// Hold fast-reverse: each tick steps, and steps count back down.
	buttons.fastReverse = true
	c.arb.Poll()
	for i := 0; i < 3; i++ {
		c.seq.Tick()
	}
	st = c.Status()
	if st.Steps != 0 {
		t.Errorf("got %d steps after reversing, want 0", st.Steps)
	}
	if !st.Fast || st.Direction != "REVERSE" {
		t.Errorf("got %+v, want fast reverse", st)
	}
	if len(statuses) == 0 {
		t.Error("status callback never fired")
	}
	if len(sink.phases) != 6 {
		t.Errorf("panel saw %d writes, want 6", len(sink.phases))
	}
}

func TestClockRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := New(DefaultTimer, &fakeButtons{}, &recordingSink{}, nil)
	if err := c.Run(ctx); err != context.Canceled {
		t.Errorf("got %v, want context.Canceled", err)
	}
}
