package response

import (
	"errors"
	"net/http"

	"ctchen222/tic-tac-toe-solo/internal/api/service"
	"ctchen222/tic-tac-toe-solo/internal/game"
	"ctchen222/tic-tac-toe-solo/internal/session"
)

var statusByError = []struct {
	err  error
	code int
}{
	{game.ErrOutOfBounds, http.StatusBadRequest},
	{game.ErrInvalidBoard, http.StatusBadRequest},
	{game.ErrUnknownLevel, http.StatusBadRequest},
	{game.ErrCellOccupied, http.StatusConflict},
	{game.ErrGameOver, http.StatusConflict},
	{game.ErrBoardLocked, http.StatusConflict},
	{game.ErrNoEmptyCell, http.StatusUnprocessableEntity},
	{session.ErrSessionNotFound, http.StatusNotFound},
	{service.ErrInvalidToken, http.StatusUnauthorized},
}

// StatusFor maps a domain error to an HTTP status code. Unknown errors are
// internal errors.
func StatusFor(err error) int {
	for _, e := range statusByError {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return http.StatusInternalServerError
}
