package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taskboard/taskboard-go/internal/middleware"
	"github.com/taskboard/taskboard-go/internal/service"
	"github.com/taskboard/taskboard-go/internal/validate"
)

// knownErrors maps domain errors to their HTTP status and client message.
var knownErrors = []struct {
	err     error
	status  int
	message string
}{
	{errInvalidBody, http.StatusBadRequest, "invalid request body"},
	{middleware.ErrAuthRequired, http.StatusUnauthorized, "Authentication required"},
	{middleware.ErrAuthInvalid, http.StatusUnauthorized, "Invalid or expired token"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{service.ErrEmailTaken, http.StatusBadRequest, "Email already registered"},
	{service.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{service.ErrProjectNotFound, http.StatusNotFound, "Project not found"},
	{service.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
}

type validationResponse struct {
	Error  string          `json:"error"`
	Errors validate.Errors `json:"errors"`
}

func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var fieldErrs validate.Errors
	if errors.As(err, &fieldErrs) {
		writeJSON(w, http.StatusBadRequest, validationResponse{Error: "Validation failed", Errors: fieldErrs})
		return
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
		return
	}

	for _, known := range knownErrors {
		if errors.Is(err, known.err) {
			writeJSON(w, known.status, errorResponse(known.message))
			return
		}
	}

	log.ErrorContext(r.Context(), "request failed",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", chimw.GetReqID(r.Context()),
	)
	writeJSON(w, http.StatusInternalServerError, errorResponse("Internal server error"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}
