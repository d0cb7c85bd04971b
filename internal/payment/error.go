package payment

import "errors"

var (
	// -- Resource state --
	ErrPaymentNotFound     = errors.New("payment record not found or already processed")
	ErrOrderAlreadyPaid    = errors.New("order is already paid")
	ErrOrderCancelled      = errors.New("cannot process payment for cancelled order")
	ErrPaymentNotCompleted = errors.New("can only refund completed payments")
	ErrAccessDenied        = errors.New("access denied")

	// -- Integrity --
	ErrInvalidSignature = errors.New("invalid payment signature")

	// -- External gateway --
	ErrGatewayTimeout  = errors.New("payment gateway timed out")
	ErrGatewayRejected = errors.New("payment gateway rejected the request")
)
