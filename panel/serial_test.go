package panel

import (
	"sync/atomic"
	"testing"
)

func TestParseInput(t *testing.T) {
	for _, test := range []struct {
		input   string
		wantFF  bool
		wantFR  bool
		wantErr bool
	}{
		{"bff", false, false, false},
		{"bfb", true, false, false}, // bit 2 low
		{"bef", false, true, false}, // bit 4 low
		{"beb", true, true, false},
		{"!panel booted", false, false, false},
		{"bxyz", false, false, true},
		{"q00", false, false, true},
	} {
		p := &Serial{}
		atomic.StoreUint32(&p.inputs, idleInputs)
		err := p.parseInput(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("parseInput(%q): err = %v, wantErr = %v", test.input, err, test.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		ff, fr := p.Buttons()
		if ff != test.wantFF || fr != test.wantFR {
			t.Errorf("parseInput(%q): buttons = %v,%v, want %v,%v",
				test.input, ff, fr, test.wantFF, test.wantFR)
		}
	}
}

// Phase writes must only touch the low two bits of the port shadow, and must
// not panic while the board is disconnected.
func TestSerialPortShadow(t *testing.T) {
	p := &Serial{}
	p.port = 0xa8
	p.SetPhase(3)
	if got := p.port; got != 0xab {
		t.Errorf("got port %#02x, want 0xab", got)
	}
	p.SetPhase(1)
	if got := p.port; got != 0xa9 {
		t.Errorf("got port %#02x, want 0xa9", got)
	}
}
