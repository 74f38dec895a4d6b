package webserver

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

//go:embed web
var webFS embed.FS

// Config holds the URLs the browser client talks to
type Config struct {
	APIURL  string
	LiveURL string // empty when live updates are off
}

// NewApp builds the web UI application
func NewApp(cfg Config) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	})

	app.Use(logger.New(logger.Config{
		Format: "${time} WEB ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New())

	webContent, err := fs.Sub(webFS, "web")
	if err != nil {
		return nil, fmt.Errorf("failed to create web sub-filesystem: %w", err)
	}

	// Served before the static file handler
	app.Get("/config", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"apiUrl":  cfg.APIURL,
			"liveUrl": cfg.LiveURL,
		})
	})

	app.Get("*", func(c *fiber.Ctx) error {
		path := c.Path()
		if path == "/" {
			path = "/index.html"
		}
		fsPath := strings.TrimPrefix(path, "/")

		data, err := fs.ReadFile(webContent, fsPath)
		if err != nil {
			// Unknown paths fall back to the single page
			data, err = fs.ReadFile(webContent, "index.html")
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("index.html not found")
			}
			c.Set("Content-Type", "text/html; charset=utf-8")
			return c.Send(data)
		}

		contentType := "application/octet-stream"
		switch {
		case strings.HasSuffix(fsPath, ".html"):
			contentType = "text/html; charset=utf-8"
		case strings.HasSuffix(fsPath, ".js"):
			contentType = "application/javascript; charset=utf-8"
		case strings.HasSuffix(fsPath, ".css"):
			contentType = "text/css; charset=utf-8"
		}
		c.Set("Content-Type", contentType)

		return c.Send(data)
	})

	return app, nil
}

// Start initializes and starts the web UI server
func Start(host string, port int, cfg Config) error {
	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	return app.Listen(fmt.Sprintf("%s:%d", host, port))
}
