package clock

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Panel is a complete hardware attachment: the two override inputs and the
// 2-bit phase output.
type Panel interface {
	ButtonSource
	PhaseSink
}

// Status is a snapshot of the driver, reported on every phase transition and
// every rate or direction change.
type Status struct {
	// Phase is the 2-bit value currently on the output lines.
	Phase uint8
	// RateThreshold is the number of ticks per phase transition in force.
	RateThreshold uint32
	Fast          bool
	Direction     string
	// Steps counts phase transitions since startup. Forward steps add,
	// reverse steps subtract.
	Steps int64
	// TickHz is the configured hardware tick frequency.
	TickHz float64
}

type StatusCallback func(status Status)

// How often the arbiter samples the override inputs. The inputs are
// human-operated pushbuttons, so there is no required period; this only
// bounds how quickly a press takes effect.
const pollInterval = time.Millisecond

// Clock wires the shared state, the sequencer and the arbiter over a panel
// back-end and runs both loops: the periodic tick loop standing in for the
// hardware timer interrupt, and the input poll loop standing in for the
// foreground control loop.
type Clock struct {
	cfg   TimerConfig
	state *State
	seq   *Sequencer
	arb   *Arbiter
	sink  PhaseSink

	statusCallback StatusCallback
	phase          uint32
	steps          int64
}

func New(cfg TimerConfig, buttons ButtonSource, sink PhaseSink, statusCallback StatusCallback) *Clock {
	c := &Clock{
		cfg:            cfg,
		state:          NewState(),
		sink:           sink,
		statusCallback: statusCallback,
	}
	c.seq = NewSequencer(c.state, c)
	c.arb = NewArbiter(c.state, buttons)
	return c
}

// Run drives the clock until ctx is canceled. The tick loop is the only
// caller of Sequencer.Tick, so ticks stay strictly serialized.
func (c *Clock) Run(ctx context.Context) error {
	c.notifyStatus()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.tickLoop(ctx)
	})
	g.Go(func() error {
		return c.pollLoop(ctx)
	})
	return g.Wait()
}

func (c *Clock) tickLoop(ctx context.Context) error {
	t := time.NewTicker(c.cfg.Interval())
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
		c.seq.Tick()
	}
}

func (c *Clock) pollLoop(ctx context.Context) error {
	t := time.NewTicker(pollInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
		if c.arb.Poll() {
			c.notifyStatus()
		}
	}
}

// SetPhase relays the sequencer's output to the panel and keeps the
// observable phase and step count. It is the sequencer's sink, so it runs on
// the tick path.
func (c *Clock) SetPhase(phase uint8) {
	c.sink.SetPhase(phase)
	atomic.StoreUint32(&c.phase, uint32(phase))
	if c.state.Direction() == Forward {
		atomic.AddInt64(&c.steps, 1)
	} else {
		atomic.AddInt64(&c.steps, -1)
	}
	c.notifyStatus()
}

// Status returns a snapshot of the driver.
func (c *Clock) Status() Status {
	rate := c.state.Rate()
	return Status{
		Phase:         uint8(atomic.LoadUint32(&c.phase)),
		RateThreshold: rate,
		Fast:          rate == RateFast,
		Direction:     c.state.Direction().String(),
		Steps:         atomic.LoadInt64(&c.steps),
		TickHz:        c.cfg.TickHz(),
	}
}

func (c *Clock) notifyStatus() {
	if c.statusCallback == nil {
		return
	}
	c.statusCallback(c.Status())
}
