package domain

import (
	"errors"
	"fmt"
)

// User-facing messages.
const (
	ErrMsgUserNameRequired = "Por favor, ingresa tu nombre"
	ErrMsgCartEmpty        = "El carrito está vacío"
	ErrMsgNoOrder          = "No hay una orden abierta"
	ErrMsgOrderPaid        = "La orden ya fue pagada"
	ErrMsgPaymentFailed    = "Error al procesar el pago"
)

var (
	ErrNoOrder   = errors.New("no open order")
	ErrOrderPaid = errors.New("order already paid")
)

// TransportError is a request that never produced an HTTP response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPStatusError is any non-2xx response, regardless of payload.
type HTTPStatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("%s: HTTP error! status: %d", e.Op, e.StatusCode)
}

// ValidationError is a local precondition failure. No remote call was made.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string { return e.Message }

// PaymentError is a checkout rejected by the backend or lost in transit.
type PaymentError struct {
	OrderID ID
	Err     error
}

func (e *PaymentError) Error() string { return ErrMsgPaymentFailed }

func (e *PaymentError) Unwrap() error { return e.Err }
