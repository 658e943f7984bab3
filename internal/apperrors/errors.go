package apperrors

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// The four business errors allowed to reach the HTTP boundary. Anything
// else is translated to a generic 500 with no internal detail.
var (
	ErrNotFound              = errors.New("couldn't find a notification with the given ID")
	ErrUnauthorized          = errors.New("permission denied")
	ErrRecipientNotFound     = errors.New("recipient does not exist")
	ErrInvalidChat           = errors.New("chat reference is not valid")
	ErrInvalidConsentRequest = errors.New("consent request reference is not valid")
)

type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
}

// Respond maps an error to its wire representation and writes it. The
// Unauthorized message never names the true owner of the record.
func Respond(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, ErrUnauthorized):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, ErrRecipientNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, ErrInvalidChat), errors.Is(err, ErrInvalidConsentRequest):
		status = http.StatusBadRequest
		message = err.Error()
	}

	ctx.JSON(status, ErrorResponse{
		Timestamp: time.Now(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
	})
}
