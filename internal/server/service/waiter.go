package service

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	// WaitTimeout bounds a single long-poll request
	WaitTimeout = 25 * time.Second
)

// WaitRegistry parks long-polling clients until their room's move count
// differs from the one they last saw
type WaitRegistry struct {
	mu       sync.Mutex
	waiters  map[string][]*waitRequest // roomID → parked clients
	shutdown chan struct{}
	closed   bool
	wg       sync.WaitGroup
}

type waitRequest struct {
	moveCount int
	notify    chan struct{} // receives at most once, closed on shutdown
	done      chan struct{}
	once      sync.Once
	timer     *time.Timer
}

// wake delivers the single notification
func (r *waitRequest) wake() {
	r.once.Do(func() {
		r.timer.Stop()
		r.notify <- struct{}{}
		close(r.done)
	})
}

// abort closes the notification channel without a signal
func (r *waitRequest) abort() {
	r.once.Do(func() {
		r.timer.Stop()
		close(r.notify)
		close(r.done)
	})
}

func NewWaitRegistry() *WaitRegistry {
	return &WaitRegistry{
		waiters:  make(map[string][]*waitRequest),
		shutdown: make(chan struct{}),
	}
}

// RegisterWait returns a channel that receives once the room changes, the
// wait times out, or the room is removed. It is closed without a value on
// shutdown.
func (w *WaitRegistry) RegisterWait(ctx context.Context, roomID string, moveCount int) <-chan struct{} {
	req := &waitRequest{
		moveCount: moveCount,
		notify:    make(chan struct{}, 1),
		done:      make(chan struct{}),
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	req.timer = time.AfterFunc(WaitTimeout, func() {
		w.remove(roomID, req)
		req.wake()
	})

	if w.closed {
		req.abort()
		return req.notify
	}

	w.waiters[roomID] = append(w.waiters[roomID], req)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		select {
		case <-req.done:
		case <-ctx.Done():
			w.remove(roomID, req)
			req.wake()
		case <-w.shutdown:
			req.abort()
		}
	}()

	return req.notify
}

// NotifyRoom wakes every waiter whose move count is stale
func (w *WaitRegistry) NotifyRoom(roomID string, moveCount int) {
	w.mu.Lock()
	var woken []*waitRequest
	var kept []*waitRequest
	for _, req := range w.waiters[roomID] {
		if req.moveCount == moveCount {
			kept = append(kept, req)
		} else {
			woken = append(woken, req)
		}
	}
	if len(kept) == 0 {
		delete(w.waiters, roomID)
	} else {
		w.waiters[roomID] = kept
	}
	w.mu.Unlock()

	for _, req := range woken {
		req.wake()
	}
}

// RemoveRoom wakes every waiter of a room that is going away
func (w *WaitRegistry) RemoveRoom(roomID string) {
	w.mu.Lock()
	list := w.waiters[roomID]
	delete(w.waiters, roomID)
	w.mu.Unlock()

	for _, req := range list {
		req.wake()
	}
}

// Waiting returns the number of parked clients for a room
func (w *WaitRegistry) Waiting(roomID string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.waiters[roomID])
}

func (w *WaitRegistry) Shutdown(timeout time.Duration) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.waiters = make(map[string][]*waitRequest)
	w.mu.Unlock()

	close(w.shutdown)

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("wait registry shutdown timed out after %s", timeout)
	}
}

func (w *WaitRegistry) remove(roomID string, req *waitRequest) {
	w.mu.Lock()
	defer w.mu.Unlock()

	list := w.waiters[roomID]
	for i, r := range list {
		if r == req {
			w.waiters[roomID] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(w.waiters[roomID]) == 0 {
		delete(w.waiters, roomID)
	}
}
