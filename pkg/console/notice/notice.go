package notice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nrednav/cuid2"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/sourcegraph/conc/pool"
	"k8s.io/utils/clock"
)

type Level string

const (
	Info  Level = "info"
	Error Level = "error"
)

// Notice is a transient message to users.
type Notice struct {
	ID      string    `json:"id"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier accepts notices. Notify never blocks.
type Notifier interface {
	Notify(Notice)
}

type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) {
	f(n)
}

// Discard is a Notifier dropping every notice.
var Discard Notifier = NotifierFunc(func(Notice) {})

// Err notifies err as an error notice.
//
// When err is (or wraps) *rest.APIError, the messages from the backend are shown as they are.
func Err(n Notifier, err error, what string) {
	if err == nil {
		return
	}
	n.Notify(Notice{Level: Error, Message: message(err, what)})
}

// Infof notifies an info notice.
func Infof(n Notifier, format string, args ...any) {
	n.Notify(Notice{Level: Info, Message: fmt.Sprintf(format, args...)})
}

func message(err error, what string) string {
	detail := err.Error()
	ae := new(rest.APIError)
	if errors.As(err, &ae) {
		detail = strings.Join(ae.Messages(), "\n")
	}
	if what == "" {
		return detail
	}
	return what + ": " + detail
}

// Bus delivers notices to subscribers.
type Bus struct {
	clock    clock.PassiveClock
	ch       chan Notice
	mu       sync.RWMutex
	handlers map[string]func(context.Context, Notice)
}

type BusOption func(*Bus) *Bus

func WithClock(c clock.PassiveClock) BusOption {
	return func(b *Bus) *Bus {
		b.clock = c
		return b
	}
}

// WithBuffer sets how many notices can wait for dispatching. Default is 64.
func WithBuffer(size int) BusOption {
	return func(b *Bus) *Bus {
		b.ch = make(chan Notice, size)
		return b
	}
}

func NewBus(options ...BusOption) *Bus {
	b := &Bus{
		clock:    clock.RealClock{},
		ch:       make(chan Notice, 64),
		handlers: map[string]func(context.Context, Notice){},
	}
	for _, opt := range options {
		b = opt(b)
	}
	return b
}

var _ Notifier = &Bus{}

// Notify publishes a notice. ID and At are filled if they are empty.
//
// When too many notices are waiting for dispatching, the notice is dropped.
func (b *Bus) Notify(n Notice) {
	if n.ID == "" {
		n.ID = cuid2.Generate()
	}
	if n.At.IsZero() {
		n.At = b.clock.Now()
	}
	if n.Level == "" {
		n.Level = Info
	}

	select {
	case b.ch <- n:
	default:
	}
}

// Subscribe registers handler called for each notice.
//
// # Returns
//
// - func(): unsubscribe.
func (b *Bus) Subscribe(handler func(context.Context, Notice)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := cuid2.Generate()
	b.handlers[id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
	}
}

// Start dispatching until ctx is done.
func (b *Bus) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case n := <-b.ch:
			b.dispatch(ctx, n)
		}
	}
}

func (b *Bus) dispatch(ctx context.Context, n Notice) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	p := pool.New().WithContext(ctx)
	for _, handler := range b.handlers {
		p.Go(func(ctx context.Context) error {
			handler(ctx, n)
			return nil
		})
	}
	_ = p.Wait()
}

// Recorder keeps the latest notices.
type Recorder struct {
	size  int
	mu    sync.RWMutex
	items []Notice
}

// NewRecorder keeps at most size notices.
func NewRecorder(size int) *Recorder {
	return &Recorder{size: size, items: make([]Notice, 0, size)}
}

// Record is a handler for Bus.Subscribe.
func (r *Recorder) Record(_ context.Context, n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.size <= 0 {
		return
	}
	if len(r.items) >= r.size {
		r.items = append(r.items[:0], r.items[len(r.items)-r.size+1:]...)
	}
	r.items = append(r.items, n)
}

// List returns recorded notices, older first.
func (r *Recorder) List() []Notice {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ret := make([]Notice, len(r.items))
	copy(ret, r.items)
	return ret
}
