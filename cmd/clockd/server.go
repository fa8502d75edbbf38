package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/w1xm/stepclock/clock"
)

const (
	maskFastFwd = 1 << iota
	maskFastRev
)

// virtualButtons merges the physical override inputs with buttons pressed
// over the websocket. Either source holding a button asserts it; the arbiter
// sees one level per input either way.
type virtualButtons struct {
	phys clock.ButtonSource
	mask uint32
}

func (v *virtualButtons) Buttons() (bool, bool) {
	ff, fr := v.phys.Buttons()
	m := atomic.LoadUint32(&v.mask)
	return ff || m&maskFastFwd != 0, fr || m&maskFastRev != 0
}

func (v *virtualButtons) set(bit uint32, pressed bool) {
	for {
		old := atomic.LoadUint32(&v.mask)
		new := old | bit
		if !pressed {
			new = old &^ bit
		}
		if atomic.CompareAndSwapUint32(&v.mask, old, new) {
			return
		}
	}
}

type Server struct {
	buttons *virtualButtons

	statusMu   sync.RWMutex
	statusCond *sync.Cond
	status     clock.Status
}

func NewServer(phys clock.ButtonSource) *Server {
	s := &Server{buttons: &virtualButtons{phys: phys}}
	s.statusCond = sync.NewCond(s.statusMu.RLocker())
	return s
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (s *Server) statusCallback(status clock.Status) {
	s.statusMu.Lock()
	s.status = status
	s.statusMu.Unlock()
	s.statusCond.Broadcast()
}

func (s *Server) StatusHandler(w http.ResponseWriter, r *http.Request) {
	s.statusMu.RLock()
	status := s.status
	s.statusMu.RUnlock()
	w.Header().Set("Content-Type", "application/json")
	data, err := json.Marshal(status)
	if err != nil {
		log.Print(err)
		return
	}
	w.Write(data)
}

type Command struct {
	Command string `json:"command"`
	Button  string `json:"button"`
}

func (s *Server) handleCommand(msg Command) error {
	var bit uint32
	switch msg.Button {
	case "fast_forward":
		bit = maskFastFwd
	case "fast_reverse":
		bit = maskFastRev
	default:
		return fmt.Errorf("unknown button %q", msg.Button)
	}
	switch msg.Command {
	case "press":
		s.buttons.set(bit, true)
	case "release":
		s.buttons.set(bit, false)
	default:
		return fmt.Errorf("unknown command %q", msg.Command)
	}
	return nil
}

func (s *Server) StatusSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	done := make(chan struct{})
	// Read and process incoming messages.
	go func() {
		defer close(done)
		defer conn.Close()
		for {
			var msg Command
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			if err := s.handleCommand(msg); err != nil {
				log.Printf("%v: %v", r.RemoteAddr, err)
			}
		}
	}()

	send := func(status clock.Status) bool {
		data, err := json.Marshal(status)
		if err != nil {
			log.Print(err)
			return false
		}
		return conn.WriteMessage(websocket.TextMessage, data) == nil
	}

	s.statusMu.RLock()
	status := s.status
	s.statusMu.RUnlock()
	if !send(status) {
		return
	}

	for {
		select {
		case <-done:
			return
		default:
		}
		s.statusMu.RLock()
		s.statusCond.Wait()
		status := s.status
		s.statusMu.RUnlock()
		if !send(status) {
			return
		}
	}
}
