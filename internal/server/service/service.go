package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"checkers/internal/server/game"
	"checkers/internal/server/storage"
)

const (
	MaxRooms           = 500
	RoomIdleTTL        = 24 * time.Hour
	SeatTokenTTL       = 7 * 24 * time.Hour
	CleanupJobInterval = 1 * time.Hour
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomLimit    = errors.New("room limit reached")
	ErrBadPassword  = errors.New("wrong room password")
)

// Broadcaster receives a fresh view after every room change
type Broadcaster interface {
	Publish(v game.View)
	CloseRoom(roomID string)
}

// Service coordinates room state, seats, live updates and storage
type Service struct {
	rooms       map[string]*game.Room
	mu          sync.RWMutex
	store       *storage.Store
	jwtSecret   []byte
	waiter      *WaitRegistry
	broadcaster Broadcaster
}

// New creates a new service instance with optional storage
func New(store *storage.Store, jwtSecret []byte) *Service {
	return &Service{
		rooms:     make(map[string]*game.Room),
		store:     store,
		jwtSecret: jwtSecret,
		waiter:    NewWaitRegistry(),
	}
}

// SetBroadcaster attaches the live update hub
func (s *Service) SetBroadcaster(b Broadcaster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcaster = b
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// RoomCount returns the number of rooms held in memory
func (s *Service) RoomCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// RegisterWait registers a client to wait for room changes
func (s *Service) RegisterWait(ctx context.Context, roomID string, moveCount int) <-chan struct{} {
	return s.waiter.RegisterWait(ctx, roomID, moveCount)
}

// changed fans a room change out to long-pollers and live subscribers.
// Called with s.mu held.
func (s *Service) changed(r *game.Room) game.View {
	v := r.View()
	s.waiter.NotifyRoom(v.ID, v.MoveCount())
	if s.broadcaster != nil {
		s.broadcaster.Publish(v)
	}
	return v
}

// Shutdown gracefully shuts down the service
func (s *Service) Shutdown(timeout time.Duration) error {
	var errs []error

	if err := s.waiter.Shutdown(timeout); err != nil {
		errs = append(errs, fmt.Errorf("wait registry: %w", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rooms = make(map[string]*game.Room)

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
		s.store = nil
	}

	return errors.Join(errs...)
}

// RunCleanupJob periodically evicts idle rooms from memory
func (s *Service) RunCleanupJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.evictIdle(time.Now().UTC().Add(-RoomIdleTTL)); n > 0 {
				log.Printf("cleanup: evicted %d idle rooms", n)
			}
		}
	}
}

// evictIdle drops rooms untouched since cutoff. Stored rooms come back on the
// next restore.
func (s *Service) evictIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, r := range s.rooms {
		if r.LastActivity().Before(cutoff) {
			s.waiter.RemoveRoom(id)
			if s.broadcaster != nil {
				s.broadcaster.CloseRoom(id)
			}
			delete(s.rooms, id)
			evicted++
		}
	}
	return evicted
}
