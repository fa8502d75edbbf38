package main

import "testing"

type fakeButtons struct {
	ff, fr bool
}

func (b *fakeButtons) Buttons() (bool, bool) {
	return b.ff, b.fr
}

func TestVirtualButtonsMerge(t *testing.T) {
	phys := &fakeButtons{}
	s := NewServer(phys)

	if err := s.handleCommand(Command{Command: "press", Button: "fast_forward"}); err != nil {
		t.Fatal(err)
	}
	ff, fr := s.buttons.Buttons()
	if !ff || fr {
		t.Errorf("buttons = %v,%v, want virtual fast-forward only", ff, fr)
	}

	// A physical press shows through alongside the virtual one.
	phys.fr = true
	ff, fr = s.buttons.Buttons()
	if !ff || !fr {
		t.Errorf("buttons = %v,%v, want both", ff, fr)
	}

	if err := s.handleCommand(Command{Command: "release", Button: "fast_forward"}); err != nil {
		t.Fatal(err)
	}
	ff, fr = s.buttons.Buttons()
	if ff || !fr {
		t.Errorf("buttons = %v,%v, want physical fast-reverse only", ff, fr)
	}
}

func TestHandleCommandRejectsUnknown(t *testing.T) {
	s := NewServer(&fakeButtons{})
	if err := s.handleCommand(Command{Command: "press", Button: "turbo"}); err == nil {
		t.Error("unknown button accepted")
	}
	if err := s.handleCommand(Command{Command: "toggle", Button: "fast_forward"}); err == nil {
		t.Error("unknown command accepted")
	}
}
