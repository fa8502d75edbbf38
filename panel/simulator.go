package panel

import "sync"

// StepsPerRev is the number of full steps per output shaft revolution of the
// 28BYJ-48 geartrain the clock is built around.
const StepsPerRev = 2048

// Button identifies one of the two override inputs on the panel.
type Button int

const (
	FastForward Button = iota
	FastReverse
)

// Simulator is an in-memory panel for development and tests. It latches the
// full output port byte the way the real board does, watches that successive
// phase writes follow the 4-step drive sequence, and integrates the rotor
// position that the drive logic would produce.
type Simulator struct {
	mu     sync.Mutex
	port   uint8
	inputs uint8
	steps  int64
	// glitches counts phase writes that skipped or repeated a drive
	// sequence state; a correct driver never produces any.
	glitches int
}

func NewSimulator() *Simulator {
	return &Simulator{inputs: idleInputs}
}

// Press sets the level of one override input to pressed (logic low).
func (s *Simulator) Press(b Button) {
	s.setButton(b, true)
}

// Release returns one override input to its idle pulled-up level.
func (s *Simulator) Release(b Button) {
	s.setButton(b, false)
}

func (s *Simulator) setButton(b Button, pressed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var bit uint8
	switch b {
	case FastForward:
		bit = buttonFastFwd
	case FastReverse:
		bit = buttonFastRev
	}
	if pressed {
		s.inputs &^= bit
	} else {
		s.inputs |= bit
	}
}

func (s *Simulator) Buttons() (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inputs&buttonFastFwd == 0, s.inputs&buttonFastRev == 0
}

func (s *Simulator) SetPhase(phase uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.port & phaseMask
	s.port = s.port&^phaseMask | phase&phaseMask
	switch (phase - prev) & 0x03 {
	case 3: // decrement: the clock moved one step forward
		s.steps++
	case 1: // increment: one step backward
		s.steps--
	default:
		s.glitches++
	}
}

// WriteAux drives the output port bits not owned by the clock core, the way
// the board's other functions would.
func (s *Simulator) WriteAux(bits uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.port = s.port&phaseMask | bits&^phaseMask
}

// Port returns the current output port byte.
func (s *Simulator) Port() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}

// Steps returns the signed number of steps taken: forward steps add,
// backward steps subtract.
func (s *Simulator) Steps() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps
}

// Glitches returns how many phase writes broke the drive sequence.
func (s *Simulator) Glitches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.glitches
}

// Angle returns the rotor position in degrees, accumulated across turns.
func (s *Simulator) Angle() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(s.steps) * 360 / StepsPerRev
}
