package utils

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type ValidationErrorResponse struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields"`
}

type OkResponse[T any] struct {
	Payload T `json:"payload"`
}

func CreateOkResponse[T any](obj T) (int, OkResponse[T]) {
	return http.StatusOK, OkResponse[T]{Payload: obj}
}

func CreateErrorResponse(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, ErrUuidNotFound),
		errors.Is(err, ErrSlugNotFound):
		return http.StatusNotFound, ErrorResponse{Code: 404, Message: err.Error()}
	case errors.Is(err, ErrValidationError),
		errors.Is(err, ErrInvalidImport):
		return http.StatusBadRequest, ErrorResponse{Code: 400, Message: err.Error()}
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusBadRequest, ErrorResponse{Code: 1001, Message: err.Error()}
	case errors.Is(err, ErrEmailTaken):
		return http.StatusConflict, ErrorResponse{Code: 1002, Message: err.Error()}
	case errors.Is(err, ErrQuotaExceeded):
		return http.StatusPaymentRequired, ErrorResponse{Code: 1003, Message: err.Error()}
	case errors.Is(err, ErrPaymentNotVerified):
		return http.StatusBadRequest, ErrorResponse{Code: 1004, Message: err.Error()}
	case errors.Is(err, ErrConflict),
		errors.Is(err, ErrDuplicateVote):
		return http.StatusConflict, ErrorResponse{Code: 409, Message: err.Error()}
	case errors.Is(err, ErrDatabaseError):
		// Never leak store internals to the caller
		return http.StatusInternalServerError, ErrorResponse{Code: 500, Message: ErrServer.Error()}
	// Permission / access errors
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrOpenIDError),
		errors.Is(err, ErrOpenIDAuthDisabled),
		errors.Is(err, ErrNativeAuthDisabled):
		return http.StatusUnauthorized, ErrorResponse{Code: 401, Message: err.Error()}
	case errors.Is(err, ErrTokenInvalid):
		return 498, ErrorResponse{Code: 498, Message: err.Error()}
	case errors.Is(err, ErrForbidden),
		errors.Is(err, ErrAdminOnly):
		return http.StatusForbidden, ErrorResponse{Code: 403, Message: err.Error()}
	}

	return http.StatusInternalServerError, ErrorResponse{Code: 500, Message: ErrServer.Error()}
}

// CreateValidationError enumerates every failing field of a binding error
// instead of only the first one.
func CreateValidationError(err error) (int, ValidationErrorResponse) {
	response := ValidationErrorResponse{
		Code:    422,
		Message: ErrValidationError.Error(),
		Fields:  make([]FieldError, 0),
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		for _, fieldError := range fieldErrors {
			response.Fields = append(response.Fields, FieldError{
				Field:  fieldError.Field(),
				Reason: fieldError.Tag(),
			})
		}
	} else {
		response.Fields = append(response.Fields, FieldError{Field: "body", Reason: err.Error()})
	}

	return http.StatusUnprocessableEntity, response
}
