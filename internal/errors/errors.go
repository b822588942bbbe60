package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeDatabase   ErrorType = "database"
	ErrorTypeExternal   ErrorType = "external_api"
	ErrorTypeInternal   ErrorType = "internal"
	ErrorTypePermission ErrorType = "permission"
	ErrorTypeTimeout    ErrorType = "timeout"
)

// AppError represents an application error with additional context
type AppError struct {
	Type     ErrorType
	Message  string
	Code     string
	Internal error
	Context  map[string]interface{}
	Source   string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the internal error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is checks if the error matches the target
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return errors.Is(e.Internal, target)
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// LogFields returns structured logging fields
func (e *AppError) LogFields() []interface{} {
	fields := []interface{}{
		"error_type", e.Type,
		"error_code", e.Code,
		"error_message", e.Message,
		"source", e.Source,
	}

	if e.Internal != nil {
		fields = append(fields, "internal_error", e.Internal.Error())
	}

	for k, v := range e.Context {
		fields = append(fields, k, v)
	}

	return fields
}

// New creates a new AppError
func New(errorType ErrorType, code, message string) *AppError {
	_, file, line, _ := runtime.Caller(1)
	source := fmt.Sprintf("%s:%d", file, line)

	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Source:  source,
		Context: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error into AppError
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	_, file, line, _ := runtime.Caller(1)
	source := fmt.Sprintf("%s:%d", file, line)

	return &AppError{
		Type:     errorType,
		Code:     code,
		Message:  message,
		Internal: err,
		Source:   source,
		Context:  make(map[string]interface{}),
	}
}

// Handler provides error handling strategies
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a new error handler
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle processes an error according to its type
func (h *Handler) Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		h.handleAppError(ctx, appErr)
	} else {
		h.logger.ErrorContext(ctx, "Unhandled error", "error", err.Error())
	}
}

func (h *Handler) handleAppError(ctx context.Context, err *AppError) {
	switch err.Type {
	case ErrorTypeValidation, ErrorTypePermission:
		h.logger.WarnContext(ctx, "Recoverable error", err.LogFields()...)
	case ErrorTypeExternal:
		// Provider failures are expected and degrade to "no data" per report half.
		h.logger.WarnContext(ctx, "Provider error", err.LogFields()...)
	case ErrorTypeDatabase, ErrorTypeInternal, ErrorTypeTimeout:
		h.logger.ErrorContext(ctx, "Critical error", err.LogFields()...)
	default:
		h.logger.ErrorContext(ctx, "Unknown error type", err.LogFields()...)
	}
}

// Predefined errors matching the engine's failure taxonomy
var (
	ErrInsufficientData    = New(ErrorTypeValidation, "INSUFFICIENT_DATA", "Not enough weather data for analysis")
	ErrUserNotFound        = New(ErrorTypeDatabase, "USER_NOT_FOUND", "User not found")
	ErrProviderUnavailable = New(ErrorTypeExternal, "PROVIDER_UNAVAILABLE", "Weather provider unavailable")
	ErrStoreUnavailable    = New(ErrorTypeDatabase, "STORE_UNAVAILABLE", "Weather store unavailable")
	ErrUnauthorized        = New(ErrorTypePermission, "UNAUTHORIZED", "Unauthorized access")
)

// NewInsufficientData flags a report half that has no usable data. The stage
// context distinguishes the historical and forecast halves in logs.
func NewInsufficientData(stage string) *AppError {
	return New(ErrorTypeValidation, "INSUFFICIENT_DATA", "Not enough weather data for analysis").
		WithContext("stage", stage)
}

// NewUserNotFound flags an unresolvable user record
func NewUserNotFound(telegramID int64) *AppError {
	return New(ErrorTypeDatabase, "USER_NOT_FOUND", "User not found").
		WithContext("telegram_id", telegramID)
}

// NewProviderError wraps a provider client failure
func NewProviderError(err error) *AppError {
	return Wrap(err, ErrorTypeExternal, "PROVIDER_UNAVAILABLE", "Weather provider unavailable")
}

// NewStoreError wraps a persistence layer failure
func NewStoreError(err error) *AppError {
	return Wrap(err, ErrorTypeDatabase, "STORE_UNAVAILABLE", "Weather store unavailable")
}
