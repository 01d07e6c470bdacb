package main

import (
	"encoding/json"
	"net/http"
)

// response is the envelope for every reply; StatusCode mirrors the HTTP
// status.
type response struct {
	StatusCode int    `json:"status_code"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

type httpError struct {
	Message string
	Code    int
}

func (e *httpError) Error() string {
	return e.Message
}

var (
	errEmptyInput   = &httpError{"Input cannot be empty", http.StatusBadRequest}
	errTooLarge     = &httpError{"Input too large", http.StatusRequestEntityTooLarge}
	errUnreadable   = &httpError{"Unable to read request body", http.StatusBadRequest}
	errNotAllowed   = &httpError{"Method Not Allowed", http.StatusMethodNotAllowed}
	errConversion   = &httpError{"Conversion failed", http.StatusInternalServerError}
	errNotSupported = &httpError{"Route not supported", http.StatusNotFound}
)

func writeResponse(w http.ResponseWriter, code int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	// converted HTML stays readable in the payload
	enc.SetEscapeHTML(false)
	enc.Encode(response{
		StatusCode: code,
		Success:    code < http.StatusBadRequest,
		Message:    message,
		Data:       data,
	})
}

func writeError(w http.ResponseWriter, r *http.Request, e *httpError, data any) {
	requestLogger(r).WithField("code", e.Code).Info(e.Message)
	writeResponse(w, e.Code, e.Message, data)
}
