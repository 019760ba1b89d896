package loop

import (
	"context"
	"fmt"
	"log"
	"time"
)

type Next struct {
	// if not nil, breaks with error
	err error

	// if quit == true and err == nil, breaks without error
	quit bool

	// otherwise, continue loop with interval.
	interval time.Duration
}

func (n Next) String() string {
	if n.err != nil {
		return fmt.Sprintf("[break] with error: %v", n.err)
	}
	if n.quit {
		return "[break] without error"
	}

	return fmt.Sprintf("[continue] interval: %s", n.interval)
}

// Interval returns how long the loop sleeps before the next task.
//
// It is meaningful only when the loop continues.
func (n Next) Interval() time.Duration {
	return n.interval
}

// continue loop.
//
// args:
//
// - interval: sleep before starting next task.
func Continue(interval time.Duration) Next {
	return Next{interval: interval}
}

// break loop.
//
// args:
//
// - err: If you break loop with error, set non nil value.
func Break(err error) Next {
	return Next{quit: true, err: err}
}

// Task is a unit of work repeated by Start.
//
// It receives the (sub-)context and the value the last task returned,
// and returns a new value and how to go next.
type Task[T any] func(context.Context, T) (T, Next)

// Start task in loop.
//
// Task should return 2 value.
//
// - T : any value the task needs.
// It can be a schedule, statistics, or something else.
//
// - next: it can be Continue(time.Duration) or Break(error).
// To run one more time, return Continue(time.Duration).
// Your task will be called with context and the last T after time.Duration (can be 0).
// If it is enough, return Break(error). When there are no error, you can pass nil.
// Zero value (Next{}) equals Continue(0), that is, "go next ASAP!".
//
// Example
//
// Count 1 to 10:
//
//	Start(ctx, 1, func(_ context.Context, value int) (int, Next) {
//		value += 1
//		if 10 <= value {
//			return value, Break(nil)
//		}
//		return value, Continue(0)
//	})
//
// Args
//
// - ctx : context. When this context get be Done, loop will be break with ctx.Err().
//
// - init : your task will be called as task(ctx, init) at the first time.
//
// - task : task receiving (context, last value), then return (new value, Continue() or Break()).
//
// - options: options for loop.
//
// Returns
//
// - T: T task returns at last.
// This value is always returned wheather or not it returns non-nil error together.
//
// - error: error in Break(error). It is nil when loop breaks with Break(nil).
func Start[T any](ctx context.Context, init T, task Task[T], options ...LoopOption) (T, error) {
	select {
	case <-ctx.Done():
		return init, ctx.Err()
	default:
	}

	value := init
	for {
		lc := &loopConfig{ctx: ctx}
		for _, opt := range options {
			lc = opt(lc)
		}

		v, n := func() (T, Next) {
			ctx := lc.ctx
			if lc.deferred != nil {
				defer lc.deferred()
			}
			return task(ctx, value)
		}()

		if n.err != nil {
			return v, n.err
		} else if n.quit {
			return v, nil
		}
		value = v

		if err := sleep(ctx, n.interval, lc.wakeup); err != nil {
			return value, err
		}
	}
}

// sleep for interval.
//
// When wakeup delivers a duration shorter than the remaining time,
// the sleep is shortened to that duration (counted from the delivery).
func sleep(ctx context.Context, interval time.Duration, wakeup <-chan time.Duration) error {
	timer := time.NewTimer(interval)
	defer func() {
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
	}()

	deadline := time.Now().Add(interval)
	for {
		select {
		case <-ctx.Done():
			// shutting down is priority. it should come first, and checking timer later.
			return ctx.Err()
		case <-timer.C:
			return nil
		case d := <-wakeup:
			now := time.Now()
			if remaining := deadline.Sub(now); remaining <= d {
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(d)
			deadline = now.Add(d)
		}
	}
}

type loopConfig struct {
	ctx      context.Context
	deferred func()
	wakeup   <-chan time.Duration
}

type LoopOption func(*loopConfig) *loopConfig

// set timeout per loop
//
// this timeout is set on context.Context passed to task.
func WithTimeout(d time.Duration) LoopOption {
	return func(lc *loopConfig) *loopConfig {
		ctx, cancel := context.WithTimeout(lc.ctx, d)
		next := *lc
		next.ctx = ctx
		next.deferred = func() {
			if lc.deferred != nil {
				defer lc.deferred()
			}
			cancel()
		}
		return &next
	}
}

// shorten sleeps between tasks.
//
// While the loop sleeps, a duration received from wakeup replaces the rest of the sleep
// if it is shorter. Longer durations are ignored.
func WithWakeup(wakeup <-chan time.Duration) LoopOption {
	return func(lc *loopConfig) *loopConfig {
		next := *lc
		next.wakeup = wakeup
		return &next
	}
}

// Monitor wraps task to log the start and end of each time the task is executed.
func Monitor[T any](logger *log.Logger, task Task[T]) Task[T] {
	var counter uint64
	return func(ctx context.Context, t T) (ret T, next Next) {
		counter += 1
		timestamp := time.Now()

		logger.Printf("task start: #0x%X", counter)
		defer func() {
			logger.Printf(
				"task end: #0x%X (takes %s): %s",
				counter, time.Since(timestamp), next,
			)
		}()

		ret, next = task(ctx, t)
		return
	}
}
