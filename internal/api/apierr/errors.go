package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/HannanLK/code-red-server/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeRoomNotFound          = "ROOM_NOT_FOUND"
	CodeRoomFull              = "ROOM_FULL"
	CodeAlreadyInRoom         = "ALREADY_IN_ROOM"
	CodeGameNotActive         = "GAME_NOT_ACTIVE"
	CodeNotYourTurn           = "NOT_YOUR_TURN"
	CodeInvalidPlacement      = "INVALID_PLACEMENT"
	CodeInvalidWord           = "INVALID_WORD"
	CodeRackMismatch          = "RACK_MISMATCH"
	CodeExchangeNotAllowed    = "EXCHANGE_NOT_ALLOWED"
	CodeChallengeNotAllowed   = "CHALLENGE_NOT_ALLOWED"
	CodeDictionaryUnavailable = "DICTIONARY_UNAVAILABLE"
	CodeBotNotFound           = "BOT_NOT_FOUND"
	CodeSummaryNotFound       = "SUMMARY_NOT_FOUND"
	CodeInternalError         = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var invalidWord *model.InvalidWordError
	if errors.As(err, &invalidWord) {
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidWord, invalidWord.Error()}}
	}

	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}}
	case errors.Is(err, model.ErrRoomFull):
		return &httpError{http.StatusConflict, APIError{CodeRoomFull, "Room is full"}}
	case errors.Is(err, model.ErrAlreadyInRoom):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyInRoom, "Already in this room"}}
	case errors.Is(err, model.ErrGameNotActive):
		return &httpError{http.StatusConflict, APIError{CodeGameNotActive, "Game is not active"}}
	case errors.Is(err, model.ErrNotYourTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrInvalidPlacement):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidPlacement, "Invalid tile placement"}}
	case errors.Is(err, model.ErrRackMismatch):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeRackMismatch, "Played tiles are not in your rack"}}
	case errors.Is(err, model.ErrExchangeNotAllowed):
		return &httpError{http.StatusConflict, APIError{CodeExchangeNotAllowed, "Exchange is not allowed"}}
	case errors.Is(err, model.ErrChallengeNotAllowed):
		return &httpError{http.StatusConflict, APIError{CodeChallengeNotAllowed, "Challenge is not allowed"}}
	case errors.Is(err, model.ErrDictionaryUnavailable):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeDictionaryUnavailable, "Word lookup is unavailable, try again"}}
	case errors.Is(err, model.ErrSummaryNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSummaryNotFound, "Game summary not found"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewBotNotFoundError creates a bot not found error
func NewBotNotFoundError(botID string) error {
	return &httpError{http.StatusNotFound, APIError{CodeBotNotFound, "Unknown bot: " + botID}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
