package api

import (
	"encoding/json"
	"log"
	"net/http"

	apperr "github.com/nac3nt/Appoint/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps business errors to their HTTP status and message.
// Anything else is an unexpected failure: logged, surfaced as an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	code := apperr.StatusCode(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		message = "An unexpected error occurred"
	}
	writeJSON(w, code, map[string]string{"error": message})
}
