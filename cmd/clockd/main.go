// Command clockd runs the stepper clock driver against a panel back-end and
// serves its status over HTTP and websocket.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/w1xm/stepclock/clock"
	"github.com/w1xm/stepclock/modbusio"
	"github.com/w1xm/stepclock/panel"
)

var (
	addr        = flag.String("addr", "127.0.0.1:8502", "address to listen on")
	serialPort  = flag.String("serial", "", "panel serial port name")
	serialBaud  = flag.Int("baud", 38400, "panel baud rate")
	modbusPort  = flag.String("modbus_serial", "", "modbus I/O module serial port name")
	modbusBaud  = flag.Int("modbus_baud", 19200, "modbus baud rate")
	modbusSlave = flag.Int("modbus_slave", 1, "modbus slave id")
	sim         = flag.Bool("sim", false, "use the simulated panel")
	oscHz       = flag.Int("osc", clock.DefaultTimer.OscillatorHz, "oscillator frequency in Hz")
	prescaler   = flag.Int("prescaler", clock.DefaultTimer.Prescaler, "timer prescaler")
	compare     = flag.Int("compare", clock.DefaultTimer.Compare, "timer compare threshold")
)

func main() {
	flag.Parse()
	ctx := context.Background()

	var p clock.Panel
	var err error
	switch {
	case *sim:
		p = panel.NewSimulator()
	case *serialPort != "":
		p, err = panel.Connect(ctx, *serialPort, *serialBaud)
	case *modbusPort != "":
		p, err = modbusio.Connect(ctx, *modbusPort, *modbusBaud, byte(*modbusSlave))
	default:
		log.Fatal("one of -sim, -serial or -modbus_serial is required")
	}
	if err != nil {
		log.Fatal(err)
	}

	cfg := clock.TimerConfig{
		OscillatorHz: *oscHz,
		Prescaler:    *prescaler,
		Compare:      *compare,
	}
	log.Printf("tick rate %.2fHz (period %v)", cfg.TickHz(), cfg.Interval())

	srv := NewServer(p)
	c := clock.New(cfg, srv.buttons, p, srv.statusCallback)
	go func() {
		log.Fatal(c.Run(ctx))
	}()

	r := mux.NewRouter()
	r.HandleFunc("/api/status", srv.StatusHandler)
	r.HandleFunc("/api/ws", srv.StatusSocketHandler)
	httpSrv := &http.Server{
		Handler: r,
		Addr:    *addr,
	}
	log.Printf("listening on %s", *addr)
	log.Fatal(httpSrv.ListenAndServe())
}
