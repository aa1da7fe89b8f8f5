package orders

import (
	"errors"

	"github.com/akshayam/wellness-store.git/internal/catalog"
)

var ErrNotFound = errors.New("order not found")

type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindFault
)

// Error is the engine's caller-facing failure type. Message is always
// safe to display; InvalidItems carries per-item stock detail when the
// failure came from stock validation.
type Error struct {
	Kind         Kind
	Message      string
	InvalidItems []catalog.InvalidItem

	cause error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

func validationErr(msg string) *Error   { return &Error{Kind: KindValidation, Message: msg} }
func notFoundErr(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func unauthorizedErr(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }
func forbiddenErr(msg string) *Error    { return &Error{Kind: KindForbidden, Message: msg} }

func faultErr(err error) *Error {
	return &Error{Kind: KindFault, Message: "Internal server error", cause: err}
}
