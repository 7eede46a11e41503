package apperror

import "errors"

var (
	ErrMalformedRequest  = errors.New("malformed request body")
	ErrInvalidBoard      = errors.New("board must be 3x3 with values 0, 1 or 2")
	ErrInvalidFigure     = errors.New("figure must be X or O")
	ErrInvalidTurnNumber = errors.New("turn number must not be negative")
	ErrUnknownMethod     = errors.New("unknown method")
	ErrMatchNotFound     = errors.New("match not found")
)

// IsBadRequest - reports whether err was caused by the caller's input.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrMalformedRequest) ||
		errors.Is(err, ErrInvalidBoard) ||
		errors.Is(err, ErrInvalidFigure) ||
		errors.Is(err, ErrInvalidTurnNumber) ||
		errors.Is(err, ErrUnknownMethod)
}
