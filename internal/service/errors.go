package service

import "fmt"

const (
	CodeNotFound        = "NOT_FOUND"
	CodeValidationError = "VALIDATION_ERROR"
	CodeAlreadyExists   = "ALREADY_EXISTS"
)

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func NewNotFound(id int64, err error) *BusinessError {
	return &BusinessError{
		Code:    CodeNotFound,
		Message: "Todo Not Found",
		Details: map[string]any{
			"resource": "todo",
			"id":       id,
		},
		Err: err,
	}
}

func NewAlreadyExists(id int64, err error) *BusinessError {
	return &BusinessError{
		Code:    CodeAlreadyExists,
		Message: "Todo Already Exists",
		Details: map[string]any{
			"resource": "todo",
			"id":       id,
		},
		Err: err,
	}
}

// message уходит клиенту как есть, например "Invalid Todo Priority"
func NewValidationError(field, message string) *BusinessError {
	return &BusinessError{
		Code:    CodeValidationError,
		Message: message,
		Details: map[string]any{
			"field": field,
		},
	}
}
