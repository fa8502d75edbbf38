package clock

import (
	"testing"
	"time"
)

func TestTickHz(t *testing.T) {
	for _, test := range []struct {
		cfg  TimerConfig
		want float64
	}{
		{TimerConfig{OscillatorHz: 9830400, Prescaler: 256, Compare: 124}, 307.2},
		{TimerConfig{OscillatorHz: 9830400, Prescaler: 256, Compare: 0}, 38400},
		{TimerConfig{OscillatorHz: 1000000, Prescaler: 1, Compare: 999}, 1000},
	} {
		if got := test.cfg.TickHz(); got != test.want {
			t.Errorf("%+v: got %v Hz, want %v", test.cfg, got, test.want)
		}
	}
}

func TestInterval(t *testing.T) {
	cfg := TimerConfig{OscillatorHz: 1000000, Prescaler: 1, Compare: 999}
	if got := cfg.Interval(); got != time.Millisecond {
		t.Errorf("got %v, want %v", got, time.Millisecond)
	}
}
