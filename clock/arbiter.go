package clock

// ButtonSource reports the two override inputs. Implementations decode the
// active-low electrical levels into pressed booleans. Buttons must not block;
// back-ends cache the last sampled levels in an atomic word.
type ButtonSource interface {
	// Buttons returns the pressed state of the fast-forward and
	// fast-reverse override inputs.
	Buttons() (fastForward, fastReverse bool)
}

// Arbiter resolves the two override inputs into the shared rate and
// direction. It is purely level-triggered: every Poll looks only at the
// current input levels, with no debounce and no memory of earlier samples,
// so contact bounce produces nothing worse than a momentary rate change.
type Arbiter struct {
	state   *State
	buttons ButtonSource
}

func NewArbiter(state *State, buttons ButtonSource) *Arbiter {
	return &Arbiter{state: state, buttons: buttons}
}

// Poll samples the override inputs once and commits the resulting rate and
// direction. Fast-forward wins when both inputs are held; with neither held
// the clock runs normal forward. It reports whether the committed pair
// differs from the previous one.
func (a *Arbiter) Poll() bool {
	ff, fr := a.buttons.Buttons()
	rate, dir := RateNormal, Forward
	switch {
	case ff:
		rate, dir = RateFast, Forward
	case fr:
		rate, dir = RateFast, Reverse
	}
	changed := a.state.Rate() != rate || a.state.Direction() != dir
	a.state.Set(rate, dir)
	return changed
}
