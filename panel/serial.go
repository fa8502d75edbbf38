// Package panel attaches the clock driver to its front panel: the two
// pushbutton override inputs and the 2-bit stepper logic output, which share
// an 8-bit port on the panel board with unrelated functions.
package panel

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tarm/serial"
)

// Input port bit assignment on the panel board. Both buttons are active low
// behind pull-ups.
const (
	buttonFastFwd = 0x04
	buttonFastRev = 0x10
)

// phaseMask covers the two output bits owned by the clock core. The rest of
// the output port belongs to other functions on the board and must survive
// phase writes untouched.
const phaseMask = 0x03

// idleInputs is the input port with no buttons pressed (pull-ups high).
const idleInputs = 0xFF

// Serial drives a panel board attached over a serial line. The board reports
// its input port as "b<hex>" lines, emits "!<text>" log lines, and accepts
// "p<hex>" output port writes.
type Serial struct {
	mu   sync.Mutex
	s    *serial.Port
	port uint8 // shadow of the board's output port

	inputs uint32 // last reported input port byte
}

func Connect(ctx context.Context, port string, baud int) (*Serial, error) {
	p := &Serial{}
	atomic.StoreUint32(&p.inputs, idleInputs)
	go p.reconnectLoop(ctx, port, baud)
	return p, nil
}

func (p *Serial) reconnectLoop(ctx context.Context, port string, baud int) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(1 * time.Second):
		}
		c := &serial.Config{Name: port, Baud: baud}
		s, err := serial.OpenPort(c)
		if err != nil {
			log.Printf("opening %q: %v", port, err)
			continue
		}
		log.Printf("opened %q", port)
		p.mu.Lock()
		p.s = s
		p.mu.Unlock()
		p.writePort()
		p.watch(ctx)
		p.mu.Lock()
		p.s = nil
		p.mu.Unlock()
		// The board is gone; treat the buttons as released until it
		// reports again.
		atomic.StoreUint32(&p.inputs, idleInputs)
	}
}

func (p *Serial) watch(ctx context.Context) {
	// TODO: Close when ctx is canceled.
	defer p.s.Close()
	scanner := bufio.NewScanner(p.s)
	for scanner.Scan() {
		input := scanner.Text()
		if len(input) < 1 {
			continue
		}
		if err := p.parseInput(input); err != nil {
			log.Printf("parsing %q: %v", input, err)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("reading serial port: %v", err)
	}
}

func (p *Serial) parseInput(input string) error {
	switch input[0] {
	case '!':
		log.Print(input[1:])
	case 'b':
		v, err := strconv.ParseUint(input[1:], 16, 8)
		if err != nil {
			return err
		}
		atomic.StoreUint32(&p.inputs, uint32(v))
	default:
		return fmt.Errorf("unknown panel input %q", input)
	}
	return nil
}

// Buttons decodes the last reported input port. The levels are active low.
func (p *Serial) Buttons() (bool, bool) {
	in := uint8(atomic.LoadUint32(&p.inputs))
	return in&buttonFastFwd == 0, in&buttonFastRev == 0
}

// SetPhase replaces the two phase bits in the output port shadow and writes
// the whole port to the board, leaving the other output bits as they were.
func (p *Serial) SetPhase(phase uint8) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.port = p.port&^phaseMask | phase&phaseMask
	p.writePortLocked()
}

func (p *Serial) writePort() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writePortLocked()
}

func (p *Serial) writePortLocked() {
	if p.s == nil {
		return
	}
	if _, err := fmt.Fprintf(p.s, "p%02x\n", p.port); err != nil {
		log.Print(err)
	}
}
