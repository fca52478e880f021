// Package respond writes JSON bodies in the shapes the property-management
// API uses: {"detail": "..."} for general errors and a map of field name to
// messages for rejected payloads.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// DetailResponse is the body of non-field errors (401, 404, 500).
type DetailResponse struct {
	Detail string `json:"detail"`
}

// FieldErrors maps a JSON field name to its validation messages.
type FieldErrors map[string][]string

// Add appends msg to the messages of field.
func (fe FieldErrors) Add(field, msg string) { fe[field] = append(fe[field], msg) }

// Page is the paginated list envelope.
type Page struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// WriteDetail writes {"detail": message} with statusCode.
func WriteDetail(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, DetailResponse{Detail: message})
}

// WriteFieldErrors writes a 400 listing the rejected fields.
func WriteFieldErrors(w http.ResponseWriter, errs FieldErrors) {
	WriteJSON(w, http.StatusBadRequest, errs)
}

func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteDetail(w, http.StatusUnauthorized, message)
}

func WriteNotFound(w http.ResponseWriter) {
	WriteDetail(w, http.StatusNotFound, "Not found.")
}

// ServerErrorDetail is the body text of an unhandled server failure.
const ServerErrorDetail = "A server error occurred."

// WriteServerError writes the generic 500.
func WriteServerError(w http.ResponseWriter) {
	WriteDetail(w, http.StatusInternalServerError, ServerErrorDetail)
}
