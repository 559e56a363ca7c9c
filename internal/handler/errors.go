package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"servicapp/internal/repository"
	"servicapp/internal/service"
)

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError maps the service/repository error taxonomy to HTTP
// status codes: ownership failures to 403, missing rows to 404,
// workflow conflicts to 409, everything else to 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, repository.ErrNotFound):
		WriteError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, repository.ErrDuplicateApplication),
		errors.Is(err, repository.ErrApplicationResolved),
		errors.Is(err, repository.ErrPostNotOpen),
		errors.Is(err, repository.ErrReviewExists):
		WriteError(w, err.Error(), http.StatusConflict)
	default:
		WriteError(w, err.Error(), http.StatusInternalServerError)
	}
}
