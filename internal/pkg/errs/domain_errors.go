package errs

import "errors"

// Error taxonomy shared by the domain, usecase and handler layers.
// Concrete errors are marked with one of these so callers can match with errors.Is.
var (
	ErrUnauthorized           = errors.New("unauthorized")
	ErrNotFound               = errors.New("not found")
	ErrNoDefaultPriceBook     = errors.New("no default price book")
	ErrAlreadySubmitted       = errors.New("already submitted")
	ErrCapacityExceeded       = errors.New("capacity exceeded")
	ErrAppointmentNotOpen     = errors.New("appointment not open")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrWebhookConfigMissing   = errors.New("webhook config missing")
	ErrWebhookDeliveryFailed  = errors.New("webhook delivery failed")

	// Malformed input that never reached a business rule
	ErrValidation = errors.New("validation error")
)

type Code string

const (
	CodeUnauthorized           Code = "UNAUTHORIZED"
	CodeNotFound               Code = "NOT_FOUND"
	CodeNoDefaultPriceBook     Code = "NO_DEFAULT_PRICEBOOK"
	CodeAlreadySubmitted       Code = "ALREADY_SUBMITTED"
	CodeCapacityExceeded       Code = "CAPACITY_EXCEEDED"
	CodeAppointmentNotOpen     Code = "APPOINTMENT_NOT_OPEN"
	CodeInvalidStateTransition Code = "INVALID_STATE_TRANSITION"
	CodeWebhookConfigMissing   Code = "WEBHOOK_CONFIG_MISSING"
	CodeWebhookDeliveryFailed  Code = "WEBHOOK_DELIVERY_FAILED"
	CodeValidation             Code = "VALIDATION_ERROR"
	CodeInternal               Code = "INTERNAL"
)

var codes = []struct {
	err  error
	code Code
}{
	{ErrUnauthorized, CodeUnauthorized},
	{ErrNotFound, CodeNotFound},
	{ErrNoDefaultPriceBook, CodeNoDefaultPriceBook},
	{ErrAlreadySubmitted, CodeAlreadySubmitted},
	{ErrCapacityExceeded, CodeCapacityExceeded},
	{ErrAppointmentNotOpen, CodeAppointmentNotOpen},
	{ErrInvalidStateTransition, CodeInvalidStateTransition},
	{ErrWebhookConfigMissing, CodeWebhookConfigMissing},
	{ErrWebhookDeliveryFailed, CodeWebhookDeliveryFailed},
	{ErrValidation, CodeValidation},
}

// CodeOf returns the taxonomy code for err, or CodeInternal when err carries no mark.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if Is(err, c.err) {
			return c.code
		}
	}
	return CodeInternal
}
