package services

import "errors"

type ErrorCode string

const (
	ErrorInvalid         ErrorCode = "invalid"
	ErrorDelivery        ErrorCode = "delivery"
	ErrorServer          ErrorCode = "server"
	ErrorStorage         ErrorCode = "storage"
	ErrorTranslationLoad ErrorCode = "translation_load"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func NewInvalidError(msg string) error  { return &ServiceError{Code: ErrorInvalid, Message: msg} }
func NewDeliveryError(msg string) error { return &ServiceError{Code: ErrorDelivery, Message: msg} }
func NewServerError(msg string) error   { return &ServiceError{Code: ErrorServer, Message: msg} }
func NewStorageError(msg string) error  { return &ServiceError{Code: ErrorStorage, Message: msg} }

func NewTranslationLoadError(msg string) error {
	return &ServiceError{Code: ErrorTranslationLoad, Message: msg}
}

func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
