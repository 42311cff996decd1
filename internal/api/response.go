package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"backend-boilerplate/internal/apperr"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError writes a structured error body. Unstructured errors are
// logged and hidden behind a plain 500.
func respondError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		log.Printf("ERROR: unhandled error: %v", err)
		respondJSON(w, http.StatusInternalServerError, &apperr.Error{
			Message: "Internal server error",
			Code:    apperr.CodeUnprocessableEntity,
			Explain: map[string]string{},
		})
		return
	}

	respondJSON(w, statusForCode(appErr.Code), appErr)
}

// respondAuthError is respondError for the permission gate: the
// structured body is kept but the status is always 401, failing
// closed.
func respondAuthError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		log.Printf("ERROR: unhandled error in auth middleware: %v", err)
		appErr = apperr.Generic(apperr.AuthNeeded)
	}
	respondJSON(w, http.StatusUnauthorized, appErr)
}

func statusForCode(code string) int {
	switch code {
	case apperr.CodeTokenExpired:
		return http.StatusUnauthorized
	case apperr.CodeResourceNotFound:
		return http.StatusNotFound
	default:
		return http.StatusUnprocessableEntity
	}
}
