package clock

import "time"

// TimerConfig mirrors the divider chain that paces the reference hardware:
// an accurate external oscillator divided by a timer prescaler and a compare
// threshold. The timer fires once every Compare+1 prescaled counts.
type TimerConfig struct {
	OscillatorHz int
	Prescaler    int
	Compare      int
}

// DefaultTimer is the reference divider chain: a 9.8304MHz TTL oscillator,
// prescaler 256, compare threshold 125.
var DefaultTimer = TimerConfig{
	OscillatorHz: 9830400,
	Prescaler:    256,
	Compare:      125,
}

// TickHz returns the tick frequency produced by the divider chain.
func (c TimerConfig) TickHz() float64 {
	return float64(c.OscillatorHz) / float64(c.Prescaler) / float64(c.Compare+1)
}

// Interval returns the tick period.
func (c TimerConfig) Interval() time.Duration {
	return time.Duration(float64(time.Second) / c.TickHz())
}
