package controllers

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	ErrorMessage string `json:"errorMessage"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{ErrorMessage: message})
}

// bearerToken reads the raw session id from the Authorization header; the
// literal "null" counts as no token.
func bearerToken(r *http.Request) string {
	token := r.Header.Get("Authorization")
	if token == "null" {
		return ""
	}
	return token
}
