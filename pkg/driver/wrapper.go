package driver

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/pion/rawframe/pkg/prop"
)

// Wrap gives a an identity and serializes its state transitions. Adapters that
// are not discovered at init time, such as a file given on the command line,
// are wrapped with it directly.
func Wrap(a Adapter, info Info) Driver {
	return &adapterWrapper{
		Adapter: a,
		id:      uuid.New().String(),
		info:    info,
		state:   StateClosed,
	}
}

type adapterWrapper struct {
	Adapter
	id    string
	info  Info
	mu    sync.Mutex
	state State
}

func (w *adapterWrapper) ID() string {
	return w.id
}

func (w *adapterWrapper) Info() Info {
	return w.info
}

func (w *adapterWrapper) Status() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *adapterWrapper) Open() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Update(StateOpened, w.Adapter.Open)
}

func (w *adapterWrapper) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Update(StateClosed, w.Adapter.Close)
}

func (w *adapterWrapper) Properties() []prop.Video {
	if w.Status() == StateClosed {
		return nil
	}
	return w.Adapter.Properties()
}

func (w *adapterWrapper) ReadFrame(ctx context.Context, p prop.Video) ([]byte, error) {
	w.mu.Lock()
	err := w.state.Update(StateReading, func() error { return nil })
	w.mu.Unlock()
	if err != nil {
		return nil, err
	}

	b, err := w.Adapter.ReadFrame(ctx, p)

	w.mu.Lock()
	// Close may have run while reading.
	if w.state == StateReading {
		w.state = StateOpened
	}
	w.mu.Unlock()
	return b, err
}
