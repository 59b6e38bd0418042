package api

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope carried by every API reply, success or failure.
type Response struct {
	IsSuccess bool   `json:"isSuccess"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
}

// AuthResponse is the account endpoints' reply shape. Token is only set on
// a successful login.
type AuthResponse struct {
	IsSuccess bool   `json:"isSuccess"`
	Message   string `json:"message"`
	Token     string `json:"token,omitempty"`
}

const internalErrorMessage = "An internal server error occurred. Please try again later."

func WriteJSON(w http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"isSuccess":false,"message":"failed to encode response","data":null}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

// WriteSuccess writes a success envelope with the given payload.
func WriteSuccess(w http.ResponseWriter, code int, message string, data any) {
	WriteJSON(w, code, Response{IsSuccess: true, Message: message, Data: data})
}

// WriteFailure writes a failure envelope with a null data field.
func WriteFailure(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, Response{IsSuccess: false, Message: message})
}

// WriteInternalError writes the generic 500 envelope. Details stay in the
// server log, never in the response.
func WriteInternalError(w http.ResponseWriter) {
	WriteFailure(w, http.StatusInternalServerError, internalErrorMessage)
}
