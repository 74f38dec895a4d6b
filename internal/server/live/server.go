package live

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Server runs the hub on its own listener
type Server struct {
	hub  *Hub
	http *http.Server
}

func NewServer(host string, port int, hub *Hub) *Server {
	return &Server{
		hub: hub,
		http: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			Handler:           hub.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// ListenAndServe blocks until the server stops. A clean shutdown returns nil.
func (s *Server) ListenAndServe() error {
	log.Printf("LIVE listening on ws://%s/rooms/{roomId}", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown disconnects subscribers and stops the listener
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.http.Shutdown(ctx)
}
