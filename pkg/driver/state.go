package driver

import "fmt"

// State represents driver's state
type State string

const (
	// StateClosed means that the driver has not been opened. In this state,
	// all information related to the hardware are still unknown. For example,
	// the frame sizes a camera supports.
	StateClosed State = "closed"
	// StateOpened means that the driver is opened, its properties are known
	// and frames may be read from it.
	StateOpened State = "opened"
	// StateReading means that a frame capture is in progress.
	StateReading State = "reading"
)

// Update updates current state, s, to next. If f fails to execute,
// s will stay unchanged. Otherwise, s will be updated to next
func (s *State) Update(next State, f func() error) error {
	var err error
	switch next {
	case StateOpened:
		err = s.toOpened()
	case StateClosed:
	case StateReading:
		err = s.toReading()
	default:
		err = fmt.Errorf("invalid state: unknown state %q", next)
	}
	if err != nil {
		return err
	}

	err = f()
	if err == nil {
		*s = next
	}
	return err
}

func (s *State) toOpened() error {
	if *s != StateClosed {
		return fmt.Errorf("invalid state: driver is already opened")
	}
	return nil
}

func (s *State) toReading() error {
	switch *s {
	case StateClosed:
		return fmt.Errorf("invalid state: driver is closed")
	case StateReading:
		return fmt.Errorf("invalid state: driver is already reading")
	}
	return nil
}
