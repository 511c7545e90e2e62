// Package gqlerr классифицирует ошибки, которые уходят клиенту в поле errors.
// Код ошибки попадает в extensions.code.
package gqlerr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindValidation Kind = iota
	KindAuthorization
	KindAuthentication
	KindInternal
)

func (k Kind) Code() string {
	switch k {
	case KindValidation:
		return "BAD_USER_INPUT"
	case KindAuthorization:
		return "FORBIDDEN"
	case KindAuthentication:
		return "UNAUTHENTICATED"
	default:
		return "INTERNAL"
	}
}

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindAuthentication:
		return "authentication"
	default:
		return "internal"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Extensions подхватывается graphql-go и уходит в ответ
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Kind.Code()}
}

func Validation(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(message string) error {
	return &Error{Kind: KindAuthorization, Message: message}
}

func Unauthenticated(message string) error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// Internal прячет детали от клиента, исходная ошибка остается в Err для логов
func Internal(err error) error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// As достает *Error из цепочки; чужие ошибки считаются внутренними
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf возвращает класс ошибки
func KindOf(err error) Kind {
	return As(err).Kind
}
