package driver

import (
	"errors"
	"testing"
)

var noop = func() error { return nil }

func TestUpdate1(t *testing.T) {
	s := StateClosed
	s.Update(StateOpened, noop)

	if s != StateOpened {
		t.Fatalf("expected %s, got %s", StateOpened, s)
	}

	s.Update(StateClosed, noop)

	if s != StateClosed {
		t.Fatalf("expected %s, got %s", StateClosed, s)
	}

	s.Update(StateOpened, noop)

	if s != StateOpened {
		t.Fatalf("expected %s, got %s", StateOpened, s)
	}
}

func TestUpdate2(t *testing.T) {
	s := StateClosed
	if err := s.Update(StateReading, noop); err == nil {
		t.Fatal("expected reading a closed driver to fail")
	}

	s.Update(StateOpened, noop)
	if err := s.Update(StateOpened, noop); err == nil {
		t.Fatal("expected opening an opened driver to fail")
	}

	if err := s.Update(StateReading, noop); err != nil {
		t.Fatal(err)
	}
	if err := s.Update(StateReading, noop); err == nil {
		t.Fatal("expected a second concurrent read to fail")
	}

	if err := s.Update(StateClosed, noop); err != nil {
		t.Fatal(err)
	}
	if s != StateClosed {
		t.Fatalf("expected %s, got %s", StateClosed, s)
	}
}

func TestUpdateFailure(t *testing.T) {
	s := StateClosed
	failure := errors.New("failed")
	if err := s.Update(StateOpened, func() error { return failure }); err != failure {
		t.Fatalf("expected %v, got %v", failure, err)
	}
	if s != StateClosed {
		t.Fatalf("state must not change on failure, got %s", s)
	}

	if err := s.Update(State("paused"), noop); err == nil {
		t.Fatal("expected an unknown state to fail")
	}
}
