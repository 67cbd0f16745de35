// Package shutdownqueue is a process-wide LIFO queue of cleanup tasks.
//
// Register tasks anywhere via Add and drain them once at the end of main:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//	defer shutdownqueue.Shutdown(ctx)
//
// Tasks run once, in reverse order of registration. Panics are recovered and
// reported as errors; Shutdown is idempotent and aggregates task errors with
// errors.Join.
package shutdownqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Task is a shutdown function. It should honor ctx and return an error if it
// cannot finish in time.
type Task func(ctx context.Context) error

var (
	mu     sync.Mutex
	tasks  []Task
	closed bool
)

// Add registers a task to be run on Shutdown, in LIFO order. If t is nil or
// shutdown has already started, Add does nothing.
func Add(t Task) {
	if t == nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	if closed {
		return
	}

	tasks = append(tasks, t)
}

// Shutdown drains all registered tasks in LIFO order. Subsequent calls are
// no-ops. If ctx ends mid-drain, Shutdown stops early and the context error
// is included in the joined result.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	if closed && len(tasks) == 0 {
		mu.Unlock()
		return nil
	}

	closed = true
	drained := tasks
	tasks = nil
	mu.Unlock()

	var errs []error

	for i := len(drained) - 1; i >= 0; i-- {
		select {
		case <-ctx.Done():
			errs = append(errs, fmt.Errorf("shutdown canceled: %w", ctx.Err()))
			return errors.Join(errs...)
		default:
		}

		err := runTask(ctx, drained[i])
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func runTask(ctx context.Context, t Task) (err error) {
	defer func() {
		r := recover()
		if r != nil {
			err = fmt.Errorf("panic in shutdown task: %v", r)
		}
	}()

	return t(ctx)
}
