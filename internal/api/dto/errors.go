package dto

// APIError represents a structured error response.
// All error responses from the API use this format for consistency.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Headroom is set only on credit-limit errors so the client can show
	// how much room the card actually has.
	Headroom *float64 `json:"headroom,omitempty"`
}

// Common error codes
const (
	ErrCodeNotFound            = "not_found"
	ErrCodeBadRequest          = "bad_request"
	ErrCodeValidation          = "validation_error"
	ErrCodeEmptyWallet         = "empty_wallet"
	ErrCodeCreditLimitExceeded = "credit_limit_exceeded"
	ErrCodeInternalError       = "internal_error"
)

// NewAPIError creates a new APIError with the given code and message.
func NewAPIError(code, message string) APIError {
	return APIError{
		Code:    code,
		Message: message,
	}
}

// NotFoundError creates a not found error response.
func NotFoundError(resource string) APIError {
	return NewAPIError(ErrCodeNotFound, resource+" not found")
}

// BadRequestError creates a bad request error response.
func BadRequestError(message string) APIError {
	return NewAPIError(ErrCodeBadRequest, message)
}

// ValidationError creates a validation error response.
func ValidationError(message string) APIError {
	return NewAPIError(ErrCodeValidation, message)
}

// CreditLimitError creates a 409 body carrying the card's headroom.
func CreditLimitError(message string, headroom float64) APIError {
	return APIError{
		Code:     ErrCodeCreditLimitExceeded,
		Message:  message,
		Headroom: &headroom,
	}
}

// InternalError creates an internal server error response.
func InternalError() APIError {
	return NewAPIError(ErrCodeInternalError, "an internal error occurred")
}
