package errors

import "fmt"

// ErrorCode 定义错误码类型
type ErrorCode int

// 系统级错误码 (1000-1999)
const (
	ErrInternal ErrorCode = 1000 + iota
	ErrNetwork
	ErrTimeout
	ErrMalformedRecord
)

// 认证相关错误码 (2000-2999)
const (
	ErrInvalidEmail ErrorCode = 2000 + iota
	ErrEmailAlreadyInUse
	ErrWeakPassword
	ErrWrongCredentials
	ErrUserNotFound
	ErrUserDisabled
	ErrTokenExpired
	ErrMissingToken
)

// 请求相关错误码 (3000-3999)
const (
	ErrBadRequest ErrorCode = 3000 + iota
	ErrValidation
	ErrResourceNotFound
	ErrResourceExists
	ErrUnknown
)

// AppError 定义应用错误结构
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装已有错误
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// From normalizes any error into an *AppError. Errors already classified at
// the store boundary pass through untouched; everything else becomes
// ErrUnknown so containers never observe a raw backend error.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(ErrUnknown, "unexpected error", err)
}

// CodeOf 返回错误对应的错误码
func CodeOf(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return ErrUnknown
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
