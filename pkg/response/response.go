// Package response provides JSON response helpers with a uniform envelope.
//
// Every payload carries a success flag, an optional human message and an
// optional data field:
//
//	{"success": true, "message": "Produto criado com sucesso.", "data": {...}}
//	{"success": false, "message": "Produto não encontrado."}
package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the wire shape shared by all JSON responses.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func write(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// JSON writes an arbitrary payload with the given status. Used for
// responses that extend the envelope with extra top-level keys (the
// token responses).
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	write(w, status, payload)
}

// Success writes a 200 with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// SuccessMessage writes a 200 with a message and optional data.
func SuccessMessage(w http.ResponseWriter, message string, data interface{}) {
	write(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created writes a 201 with a message and the created resource.
func Created(w http.ResponseWriter, message string, data interface{}) {
	write(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Error writes a failure envelope with the given status and message.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Success: false, Message: message})
}

// ValidationError writes the field→messages bag produced by pkg/validate.
// The status varies by endpoint (422 or 400), so the caller supplies it.
func ValidationError(w http.ResponseWriter, status int, errs map[string][]string) {
	write(w, status, Envelope{Success: false, Message: "Validation errors", Data: errs})
}
