package response

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/helmet-store/pkg/logger"
)

// InternalMessage is the client-facing text for every unexpected failure.
const InternalMessage = "An internal server error occurred"

type envelope struct {
	Status  int               `json:"status"`
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response: encode body", "error", err)
	}
}

// Success sends a 200 with v as the body.
func Success(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusOK, v)
}

// Error sends the error envelope for status.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, envelope{Status: status, Error: http.StatusText(status), Message: message})
}

// BadRequest sends a 400 with optional field-level errors.
func BadRequest(w http.ResponseWriter, message string, errs map[string]string) {
	JSON(w, http.StatusBadRequest, envelope{
		Status:  http.StatusBadRequest,
		Error:   http.StatusText(http.StatusBadRequest),
		Message: message,
		Errors:  errs,
	})
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Not found"
	}
	Error(w, http.StatusNotFound, message)
}

// InternalError sends a 500 without leaking the cause.
func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, InternalMessage)
}

// TooManyRequests sends a 429.
func TooManyRequests(w http.ResponseWriter) {
	Error(w, http.StatusTooManyRequests, "Too Many Requests")
}
