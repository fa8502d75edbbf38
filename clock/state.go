package clock

import "sync/atomic"

// Rate thresholds, in ticks that must elapse before one phase transition.
// With the reference divider chain (9.8304MHz oscillator / 256 prescaler /
// 126 compare counts) the base tick runs at roughly 305Hz, so RateNormal
// steps the motor at about a third of that and RateFast at the full tick
// rate.
const (
	RateFast   uint32 = 0
	RateNormal uint32 = 2
)

// Direction of clock movement. Forward advances the clock face; the phase
// counter decrements in Forward and increments in Reverse, matching the coil
// ordering of the external driver logic. The mapping depends on the board
// wiring and must not be normalized.
type Direction uint32

const (
	Forward Direction = 1
	Reverse Direction = 2
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "FORWARD"
	case Reverse:
		return "REVERSE"
	}
	return "UNKNOWN"
}

// State holds the rate and direction shared between the Arbiter and the
// Sequencer. The Arbiter is the only writer and the Sequencer the only
// reader; each field is a single word stored and loaded atomically, so the
// tick path never takes a lock and never observes a torn value.
type State struct {
	rate      uint32
	direction uint32
}

// NewState returns shared state at the power-on defaults: normal rate,
// forward movement.
func NewState() *State {
	s := &State{}
	s.Set(RateNormal, Forward)
	return s
}

// Set commits a rate threshold and direction. Arbiter use only.
func (s *State) Set(rate uint32, dir Direction) {
	atomic.StoreUint32(&s.rate, rate)
	atomic.StoreUint32(&s.direction, uint32(dir))
}

// Rate returns the current tick threshold.
func (s *State) Rate() uint32 {
	return atomic.LoadUint32(&s.rate)
}

// Direction returns the current direction of movement.
func (s *State) Direction() Direction {
	return Direction(atomic.LoadUint32(&s.direction))
}
