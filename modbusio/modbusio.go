// Package modbusio attaches the clock driver to a modbus RTU I/O module:
// the two override buttons on discrete inputs and the two phase bits on
// coils.
package modbusio

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"github.com/w1xm/stepclock/internal/modbus"
)

// Terminal assignment on the I/O module. The module's input terminals close
// to ground when a button is held, so a set discrete input means pressed.
const (
	inputFastFwd = 0
	inputFastRev = 1

	coilPhaseA = 0 // phase bit 0
	coilPhaseB = 1 // phase bit 1
)

type Panel struct {
	mu     sync.Mutex
	client *modbus.Client

	inputs uint32 // bit 0 fast-forward, bit 1 fast-reverse, pressed levels
}

func Connect(ctx context.Context, port string, baud int, slaveID byte) (*Panel, error) {
	p := &Panel{
		client: &modbus.Client{
			Port:     port,
			BaudRate: baud,
			SlaveId:  slaveID,
		},
	}
	p.client.Poll = p.pollOnce
	return p, p.client.Connect(ctx)
}

func (p *Panel) pollOnce() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	results, err := p.client.ReadDiscreteInputs(0, 2)
	if err != nil {
		return err
	}
	bits := modbus.BytesToBits(results)
	var v uint32
	if bits[inputFastFwd] {
		v |= 1
	}
	if bits[inputFastRev] {
		v |= 2
	}
	atomic.StoreUint32(&p.inputs, v)
	return nil
}

// Buttons returns the last polled input levels without touching the bus.
func (p *Panel) Buttons() (bool, bool) {
	in := atomic.LoadUint32(&p.inputs)
	return in&1 != 0, in&2 != 0
}

// SetPhase drives the two phase coils. Coils other than the two it owns are
// never written, so the rest of the module stays under its own control.
func (p *Panel) SetPhase(phase uint8) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.client.WriteCoil(coilPhaseA, phase&1 != 0); err != nil {
		log.Printf("writing phase coil: %v", err)
		return
	}
	if err := p.client.WriteCoil(coilPhaseB, phase&2 != 0); err != nil {
		log.Printf("writing phase coil: %v", err)
	}
}
