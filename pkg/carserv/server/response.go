package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nekruzvatanshoev/easydrive/pkg/carserv/dal"
)

// Response is the envelope of every API response.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error describes a failed request.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success wraps data.
func Success(data any) Response {
	return Response{Data: data}
}

// Fail builds an error response.
func Fail(code, message string) Response {
	return Response{Error: &Error{Code: code, Message: message}}
}

// JSON writes resp with the given status code.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// headers are already sent
	_ = json.NewEncoder(w).Encode(resp)
}

// OK writes a 200 response.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Success(data))
}

// BadRequest writes a 400 response.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, Fail("BAD_REQUEST", message))
}

// NotFound writes a 404 response.
func NotFound(w http.ResponseWriter, message string) {
	JSON(w, http.StatusNotFound, Fail("NOT_FOUND", message))
}

// InternalError writes a 500 response without exposing details.
func InternalError(w http.ResponseWriter) {
	JSON(w, http.StatusInternalServerError, Fail("INTERNAL_ERROR", "internal server error"))
}

// WriteError maps typed errors onto responses.
func WriteError(w http.ResponseWriter, err error) {
	var validation *ValidationError
	switch {
	case errors.As(err, &validation):
		BadRequest(w, validation.Error())
	case errors.Is(err, dal.ErrVehicleNotFound):
		NotFound(w, err.Error())
	default:
		InternalError(w)
	}
}
