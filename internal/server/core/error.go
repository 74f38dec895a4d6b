package core

// Error codes
const (
	ErrRoomNotFound       = "ROOM_NOT_FOUND"
	ErrOutOfBounds        = "OUT_OF_BOUNDS"
	ErrNoPieceAtOrigin    = "NO_PIECE_AT_ORIGIN"
	ErrWrongTurn          = "WRONG_TURN"
	ErrIllegalDestination = "ILLEGAL_DESTINATION"
	ErrCaptureRequired    = "CAPTURE_REQUIRED"
	ErrGameOver           = "GAME_OVER"
	ErrSeatTaken          = "SEAT_TAKEN"
	ErrRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	ErrInvalidContent     = "INVALID_CONTENT_TYPE"
	ErrInvalidRequest     = "INVALID_REQUEST"
	ErrInvalidPosition    = "INVALID_POSITION"
	ErrInternalError      = "INTERNAL_ERROR"
	ErrResourceLimit      = "RESOURCE_LIMIT"
	ErrUnauthorized       = "UNAUTHORIZED"
)
