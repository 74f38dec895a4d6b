package http

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"checkers/internal/server/core"
	"checkers/internal/server/processor"
	"checkers/internal/server/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const rateLimitRate = 10 // req/sec

// HTTPHandler handles HTTP requests and routes them to the processor
type HTTPHandler struct {
	proc *processor.Processor
	svc  *service.Service
}

func NewHTTPHandler(proc *processor.Processor, svc *service.Service) *HTTPHandler {
	return &HTTPHandler{proc: proc, svc: svc}
}

func NewFiberApp(proc *processor.Processor, svc *service.Service, devMode bool) *fiber.App {
	h := NewHTTPHandler(proc, svc)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Health check (no rate limit)
	app.Get("/health", h.Health)

	api := app.Group("/api/v1")

	maxReq := rateLimitRate
	if devMode {
		maxReq = rateLimitRate * 2
	}
	api.Use(limiter.New(limiter.Config{
		Max:          maxReq,
		Expiration:   1 * time.Second,
		KeyGenerator: clientKey,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
				Error:   "rate limit exceeded",
				Code:    core.ErrRateLimitExceeded,
				Details: fmt.Sprintf("%d requests per second allowed", maxReq),
			})
		},
	}))

	// Content-Type validation for POST requests
	api.Use(contentTypeValidator)

	// Middleware validation for sanitization
	api.Use(validationMiddleware)

	validateToken := svc.ValidateToken

	// Room creation: 10 req/min per IP on top of the global limit
	api.Post("/rooms", limiter.New(limiter.Config{
		Max:          10,
		Expiration:   1 * time.Minute,
		KeyGenerator: clientKey,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
				Error:   "rate limit exceeded",
				Code:    core.ErrRateLimitExceeded,
				Details: "10 rooms per minute allowed",
			})
		},
	}), h.CreateRoom)
	api.Get("/rooms", h.ListRooms)
	api.Get("/rooms/:roomId", h.GetRoom)
	api.Delete("/rooms/:roomId", OptionalAuth(validateToken), h.DeleteRoom)
	api.Get("/rooms/:roomId/board", h.GetBoard)
	api.Get("/rooms/:roomId/moves", h.LegalMoves)
	api.Post("/rooms/:roomId/moves", OptionalAuth(validateToken), h.MakeMove)
	api.Post("/rooms/:roomId/undo", OptionalAuth(validateToken), h.UndoMove)
	api.Post("/rooms/:roomId/reset", OptionalAuth(validateToken), h.ResetRoom)
	api.Post("/rooms/:roomId/seats", OptionalAuth(validateToken), h.ClaimSeat)

	return app
}

// clientKey keys rate limits by the first forwarded address or the peer IP
func clientKey(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return xff
	}
	return c.IP()
}

// contentTypeValidator ensures POST requests have application/json
func contentTypeValidator(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		contentType := c.Get("Content-Type")
		if contentType != "application/json" && contentType != "" {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(core.ErrorResponse{
				Error:   "unsupported media type",
				Code:    core.ErrInvalidContent,
				Details: "Content-Type must be application/json",
			})
		}
	}
	return c.Next()
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := core.ErrorResponse{
		Error: "internal server error",
		Code:  core.ErrInternalError,
	}

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		response.Error = e.Message

		switch code {
		case fiber.StatusNotFound:
			response.Code = core.ErrRoomNotFound
		case fiber.StatusBadRequest, fiber.StatusMethodNotAllowed:
			response.Code = core.ErrInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = core.ErrRateLimitExceeded
		}
	}

	return c.Status(code).JSON(response)
}

// statusFor maps a processor error code to an HTTP status
func statusFor(code string) int {
	switch code {
	case core.ErrRoomNotFound:
		return fiber.StatusNotFound
	case core.ErrUnauthorized:
		return fiber.StatusForbidden
	case core.ErrSeatTaken, core.ErrGameOver:
		return fiber.StatusConflict
	case core.ErrResourceLimit:
		return fiber.StatusServiceUnavailable
	case core.ErrInternalError:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}

// reply writes a processor response with the given success status
func reply(c *fiber.Ctx, resp processor.ProcessorResponse, status int) error {
	if !resp.Success {
		return c.Status(statusFor(resp.Error.Code)).JSON(resp.Error)
	}
	if resp.Data == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(status).JSON(resp.Data)
}

// roomID returns the validated room ID path parameter
func roomID(c *fiber.Ctx) (string, error) {
	id := c.Params("roomId")
	if !isValidUUID(id) {
		return "", c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid room ID format",
			Code:    core.ErrInvalidRequest,
			Details: "room ID must be a valid UUID",
		})
	}
	return id, nil
}

// validatedBody returns the request parsed by validationMiddleware
func validatedBody[T any](c *fiber.Ctx) (T, error) {
	var zero T

	// Ensure middleware validation ran
	validated, ok := c.Locals("validated").(bool)
	if !ok || !validated {
		return zero, c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "validation bypass detected",
			Code:  core.ErrInternalError,
		})
	}

	body, ok := c.Locals("validatedBody").(*T)
	if !ok || body == nil {
		return zero, c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "validation data missing",
			Code:  core.ErrInternalError,
		})
	}
	return *body, nil
}

// Health check endpoint with storage status
func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"time":    time.Now().Unix(),
		"storage": h.svc.GetStorageHealth(),
		"rooms":   h.svc.RoomCount(),
	})
}

// CreateRoom opens a room at the opening or a supplied position
func (h *HTTPHandler) CreateRoom(c *fiber.Ctx) error {
	req, err := validatedBody[core.CreateRoomRequest](c)
	if err != nil {
		return err
	}
	return reply(c, h.proc.Execute(processor.NewCreateRoomCommand(req)), fiber.StatusCreated)
}

func (h *HTTPHandler) ListRooms(c *fiber.Ctx) error {
	return reply(c, h.proc.Execute(processor.NewListRoomsCommand()), fiber.StatusOK)
}

// GetRoom retrieves the room, optionally waiting for the next change
func (h *HTTPHandler) GetRoom(c *fiber.Ctx) error {
	id, err := roomID(c)
	if id == "" {
		return err
	}

	if c.Query("wait", "false") != "true" {
		return reply(c, h.proc.Execute(processor.NewGetRoomCommand(id)), fiber.StatusOK)
	}

	// Long-polling path
	moveCount, err := strconv.Atoi(c.Query("moveCount", "-1"))
	if err != nil {
		moveCount = -1
	}

	v, err := h.svc.GetRoom(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(core.ErrorResponse{
			Error: "room not found",
			Code:  core.ErrRoomNotFound,
		})
	}

	// Caller is behind, answer immediately
	if moveCount != v.MoveCount() {
		return reply(c, h.proc.Execute(processor.NewGetRoomCommand(id)), fiber.StatusOK)
	}

	ctx := c.Context()
	notify := h.svc.RegisterWait(ctx, id, moveCount)

	select {
	case <-notify:
		// Changed, timed out or deleted
		return reply(c, h.proc.Execute(processor.NewGetRoomCommand(id)), fiber.StatusOK)
	case <-ctx.Done():
		return nil
	}
}

// DeleteRoom closes a room and its live subscribers
func (h *HTTPHandler) DeleteRoom(c *fiber.Ctx) error {
	id, err := roomID(c)
	if id == "" {
		return err
	}

	cmd := processor.NewDeleteRoomCommand(id)
	cmd.SeatID = seatFor(c, id)
	return reply(c, h.proc.Execute(cmd), fiber.StatusNoContent)
}

// GetBoard returns the ASCII board
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	id, err := roomID(c)
	if id == "" {
		return err
	}
	return reply(c, h.proc.Execute(processor.NewGetBoardCommand(id)), fiber.StatusOK)
}

// LegalMoves lists the destinations of the piece on ?from=
func (h *HTTPHandler) LegalMoves(c *fiber.Ctx) error {
	id, err := roomID(c)
	if id == "" {
		return err
	}

	from := c.Query("from")
	if verr := validate.Var(from, "required,square"); verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid square",
			Code:    core.ErrInvalidRequest,
			Details: "from must be a square such as c3",
		})
	}

	return reply(c, h.proc.Execute(processor.NewLegalMovesCommand(id, from)), fiber.StatusOK)
}

// MakeMove submits a move
func (h *HTTPHandler) MakeMove(c *fiber.Ctx) error {
	id, err := roomID(c)
	if id == "" {
		return err
	}
	req, err := validatedBody[core.MoveRequest](c)
	if err != nil {
		return err
	}

	cmd := processor.NewMakeMoveCommand(id, req)
	cmd.SeatID = seatFor(c, id)
	return reply(c, h.proc.Execute(cmd), fiber.StatusOK)
}

// UndoMove undoes one or more moves
func (h *HTTPHandler) UndoMove(c *fiber.Ctx) error {
	id, err := roomID(c)
	if id == "" {
		return err
	}
	req, err := validatedBody[core.UndoRequest](c)
	if err != nil {
		return err
	}

	cmd := processor.NewUndoMoveCommand(id, req)
	cmd.SeatID = seatFor(c, id)
	return reply(c, h.proc.Execute(cmd), fiber.StatusOK)
}

// ResetRoom returns the room to its initial position
func (h *HTTPHandler) ResetRoom(c *fiber.Ctx) error {
	id, err := roomID(c)
	if id == "" {
		return err
	}

	cmd := processor.NewResetRoomCommand(id)
	cmd.SeatID = seatFor(c, id)
	return reply(c, h.proc.Execute(cmd), fiber.StatusOK)
}

// ClaimSeat claims a color and returns a seat token
func (h *HTTPHandler) ClaimSeat(c *fiber.Ctx) error {
	id, err := roomID(c)
	if id == "" {
		return err
	}
	req, err := validatedBody[core.SeatRequest](c)
	if err != nil {
		return err
	}

	cmd := processor.NewClaimSeatCommand(id, req)
	// Any valid token keeps the holder identity, even one from another room
	cmd.SeatID, _ = c.Locals("seatID").(string)
	return reply(c, h.proc.Execute(cmd), fiber.StatusCreated)
}
