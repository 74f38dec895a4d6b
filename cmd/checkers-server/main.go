// Package main runs the checkers room server: the REST API, the optional
// live update socket and the optional web UI.
package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"checkers/cmd/checkers-server/cli"
	"checkers/internal/server/engine"
	"checkers/internal/server/http"
	"checkers/internal/server/live"
	"checkers/internal/server/processor"
	"checkers/internal/server/service"
	"checkers/internal/server/storage"
	"checkers/internal/server/webserver"
)

const (
	gracefulShutdownTimeout = time.Second * 5
)

func main() {
	// Check for CLI database commands
	if len(os.Args) > 1 && os.Args[1] == "db" {
		if err := cli.Run(os.Args[2:]); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		os.Exit(0)
	}

	var (
		apiHost     = flag.String("api-host", "localhost", "API server host")
		apiPort     = flag.Int("api-port", 8080, "API server port")
		dev         = flag.Bool("dev", false, "Development mode (relaxed rate limits, fixed token secret)")
		storagePath = flag.String("storage-path", "", "Path to SQLite database file (disables persistence if empty)")
		pidPath     = flag.String("pid", "", "Optional path to write PID file")
		pidLock     = flag.Bool("pid-lock", false, "Lock PID file to allow only one instance (requires -pid)")

		// Rules
		mandatoryCapture = flag.Bool("mandatory-capture", true, "Forbid simple moves while a capture is available")
		promoteMidChain  = flag.Bool("promote-mid-chain", false, "Crown a man mid-capture and let it continue as a king")

		// Live updates
		livePort = flag.Int("live-port", 8081, "WebSocket live update port (0 disables)")

		// Web UI
		serve   = flag.Bool("serve", false, "Enable web UI server")
		webHost = flag.String("web-host", "localhost", "Web UI server host")
		webPort = flag.Int("web-port", 9090, "Web UI server port")
	)
	flag.Parse()

	if *pidLock && *pidPath == "" {
		log.Fatal("Error: -pid-lock flag requires the -pid flag to be set")
	}

	if *pidPath != "" {
		cleanup, err := managePIDFile(*pidPath, *pidLock)
		if err != nil {
			log.Fatalf("Failed to manage PID file: %v", err)
		}
		defer cleanup()
		log.Printf("PID file created at: %s (lock: %v)", *pidPath, *pidLock)
	}

	// 1. Storage (optional), closed by the service on shutdown
	var store *storage.Store
	if *storagePath != "" {
		log.Printf("Initializing persistent storage at: %s", *storagePath)
		var err error
		store, err = storage.NewStore(*storagePath, *dev)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		if err := store.InitDB(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
	} else {
		log.Printf("Persistent storage disabled (use -storage-path to enable)")
	}

	// Seat token secret
	var jwtSecret []byte
	if *dev {
		jwtSecret = []byte("dev-secret-minimum-32-characters-long")
		log.Printf("Using fixed seat token secret (dev mode)")
	} else {
		jwtSecret = make([]byte, 32)
		if _, err := rand.Read(jwtSecret); err != nil {
			log.Fatalf("Failed to generate seat token secret: %v", err)
		}
		log.Printf("Seat token secret generated (seats valid until restart)")
	}

	// 2. Service and processor
	svc := service.New(store, jwtSecret)

	rules := engine.Rules{
		MandatoryCapture: *mandatoryCapture,
		PromoteMidChain:  *promoteMidChain,
	}
	proc := processor.New(svc, rules)

	restored, err := svc.Restore(proc.Evaluate)
	if err != nil {
		svc.Shutdown(gracefulShutdownTimeout)
		log.Fatalf("Failed to restore rooms: %v", err)
	}
	if restored > 0 {
		log.Printf("Restored %d room(s) from storage", restored)
	}

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	go svc.RunCleanupJob(cleanupCtx, service.CleanupJobInterval)

	// 3. Live update hub (optional)
	var liveServer *live.Server
	liveURL := ""
	if *livePort != 0 {
		hub := live.NewHub(svc.GetRoom, proc.RoomResponse)
		svc.SetBroadcaster(hub)
		liveServer = live.NewServer(*apiHost, *livePort, hub)
		liveURL = fmt.Sprintf("ws://%s:%d", *apiHost, *livePort)

		go func() {
			if err := liveServer.ListenAndServe(); err != nil {
				log.Printf("Live server error: %v", err)
			}
		}()
	}

	// 4. REST API
	app := http.NewFiberApp(proc, svc, *dev)
	apiAddr := fmt.Sprintf("%s:%d", *apiHost, *apiPort)

	go func() {
		log.Printf("Checkers API Server starting...")
		log.Printf("API Listening on: http://%s", apiAddr)
		log.Printf("API Version: v1")
		log.Printf("Rules: mandatory capture %v, promote mid-chain %v", rules.MandatoryCapture, rules.PromoteMidChain)
		if *dev {
			log.Printf("Rate Limit: 20 requests/second per IP (DEV MODE)")
		} else {
			log.Printf("Rate Limit: 10 requests/second per IP")
		}
		if *storagePath != "" {
			log.Printf("Storage: Enabled (%s)", *storagePath)
		} else {
			log.Printf("Storage: Disabled (rooms lost on restart)")
		}
		log.Printf("API Endpoints: http://%s/api/v1/rooms", apiAddr)
		log.Printf("Health: http://%s/health", apiAddr)

		if err := app.Listen(apiAddr); err != nil {
			log.Printf("API server listen error: %v", err)
		}
	}()

	// 5. Web UI (optional)
	if *serve {
		cfg := webserver.Config{
			APIURL:  fmt.Sprintf("http://%s", apiAddr),
			LiveURL: liveURL,
		}

		go func() {
			log.Printf("Web UI Server starting...")
			log.Printf("Web UI Listening on: http://%s:%d", *webHost, *webPort)
			log.Printf("Web UI API target: %s", cfg.APIURL)

			if err := webserver.Start(*webHost, *webPort, cfg); err != nil {
				log.Printf("Web UI server error: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down servers...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer shutdownCancel()

	if err = app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if liveServer != nil {
		if err = liveServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Live server shutdown error: %v", err)
		}
	}

	cleanupCancel()

	// Releases long-pollers and flushes storage
	if err = svc.Shutdown(gracefulShutdownTimeout); err != nil {
		log.Printf("Service shutdown error: %v", err)
	}

	log.Println("Servers exited")
}
