package httpapi

import (
	"encoding/json"
	"net/http"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	OK    bool      `json:"ok"`
	Data  any       `json:"data,omitempty"`
	Error *apiError `json:"error,omitempty"`
}

func respondOK(w http.ResponseWriter, data any, status int) {
	writeJSON(w, envelope{OK: true, Data: data}, status)
}

func respondErr(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, envelope{OK: false, Error: &apiError{Code: code, Message: message}}, status)
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
