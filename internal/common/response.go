package common

import (
	"encoding/json"
	"log"
	"net/http"
)

// Envelope is the uniform API response shape.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	respond(w, code, Envelope{Success: false, Message: message})
}

func RespondWithData(w http.ResponseWriter, code int, data interface{}) {
	respond(w, code, Envelope{Success: true, Data: data})
}

func RespondWithMessage(w http.ResponseWriter, code int, message string) {
	respond(w, code, Envelope{Success: true, Message: message})
}

// RespondWithDomainError maps a service error to its HTTP status. Unexpected
// errors are logged server-side and masked with a generic message so storage
// details never reach the client.
func RespondWithDomainError(w http.ResponseWriter, err error) {
	code := HTTPStatusFromError(err)
	if code == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		RespondWithError(w, code, ErrInternalServer.Error())
		return
	}
	RespondWithError(w, code, err.Error())
}

func respond(w http.ResponseWriter, code int, payload Envelope) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success": false, "message": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
