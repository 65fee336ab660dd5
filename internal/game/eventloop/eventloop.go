// Package eventloop runs game code on a single goroutine.
//
// Everything that touches a game's state (user input, speech backend events,
// timers) is funnelled through a Scheduler so the engine never needs locks.
package eventloop

import (
	"errors"
	"sync"
	"time"
)

var ErrClosed = errors.New("eventloop: closed")

// Scheduler queues work for the owning goroutine.
type Scheduler interface {
	// Post runs fn after the current task finishes. Safe to call from any goroutine.
	Post(fn func())
	// After runs fn on the loop once d has elapsed.
	After(d time.Duration, fn func()) Timer
}

type Timer interface {
	// Stop prevents the timer from firing. It returns false if it already fired or was stopped.
	Stop() bool
}

// Loop is a Scheduler backed by one goroutine.
type Loop struct {
	mu     sync.Mutex
	tasks  []func()
	wake   chan struct{}
	done   chan struct{}
	closed bool
}

func New() *Loop {
	l := &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) After(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, func() { l.Post(fn) })
}

// Do runs fn on the loop and waits for it. It must not be called from the loop itself.
func (l *Loop) Do(fn func()) error {
	ran := make(chan struct{})
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.mu.Unlock()

	l.Post(func() {
		defer close(ran)
		fn()
	})

	select {
	case <-ran:
		return nil
	case <-l.done:
		return ErrClosed
	}
}

// Close stops the loop. Pending tasks are discarded.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.tasks = nil
	l.mu.Unlock()
	close(l.done)
}

func (l *Loop) run() {
	for {
		select {
		case <-l.done:
			return
		case <-l.wake:
		}

		for {
			l.mu.Lock()
			if l.closed || len(l.tasks) == 0 {
				l.mu.Unlock()
				break
			}
			fn := l.tasks[0]
			l.tasks = l.tasks[1:]
			l.mu.Unlock()

			fn()
		}
	}
}
