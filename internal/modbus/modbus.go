// Package modbus wraps a goburrow modbus RTU connection with the
// connect/retry/poll loop the clock's I/O module attachment needs.
package modbus

import (
	"context"
	"log"
	"time"

	"github.com/goburrow/modbus"
)

type Client struct {
	// Port and BaudRate configure the local serial connection.
	Port string
	// BaudRate defaults to 19200.
	BaudRate int
	SlaveId  byte

	// Poll is called in a loop while the connection is up. A returned
	// error drops the connection; it is reopened after a short delay.
	Poll func() error
	// PollInterval paces the Poll loop. Defaults to 20ms, plenty for
	// human-operated inputs without hammering the bus.
	PollInterval time.Duration

	handler *modbus.RTUClientHandler
	modbus.Client
}

func (c *Client) Connect(ctx context.Context) error {
	handler := modbus.NewRTUClientHandler(c.Port)
	handler.BaudRate = c.BaudRate
	if handler.BaudRate == 0 {
		handler.BaudRate = 19200
	}
	handler.DataBits = 8
	handler.Parity = "N"
	handler.StopBits = 1
	handler.Timeout = 1 * time.Second
	handler.SlaveId = c.SlaveId
	c.handler = handler
	if c.PollInterval == 0 {
		c.PollInterval = 20 * time.Millisecond
	}
	c.Client = modbus.NewClient(c.handler)
	go c.reconnectLoop(ctx)
	return nil
}

func (c *Client) reconnectLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(1 * time.Second):
		}

		if err := c.handler.Connect(); err != nil {
			log.Printf("opening %q: %v", c.Port, err)
			continue
		}
		if err := c.watch(ctx); err != nil {
			log.Printf("watching %q: %v", c.Port, err)
		}
	}
}

func (c *Client) watch(ctx context.Context) error {
	defer c.handler.Close()
	t := time.NewTicker(c.PollInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
		if err := c.Poll(); err != nil {
			return err
		}
	}
}

func (c *Client) WriteCoil(coil int, value bool) error {
	var v uint16
	if value {
		v = 0xFF00
	}
	_, err := c.WriteSingleCoil(uint16(coil), v)
	return err
}

func BytesToBits(bs []byte) []bool {
	var out []bool
	for _, b := range bs {
		for i := 0; i < 8; i++ {
			out = append(out, (b>>uint(i)&1) == 1)
		}
	}
	return out
}
