package errors

import "fmt"

var (
	ErrWorkerPanic   = fmt.Errorf("worker panic")
	ErrMissingConfig = fmt.Errorf("missing configuration")

	// Inbound routing outcomes. Both are drops, never transport errors.
	ErrUnknownSender     = fmt.Errorf("unknown sender")
	ErrNoActiveEvaluator = fmt.Errorf("no active evaluator")

	ErrDeliveryFailed = fmt.Errorf("delivery failed")
	ErrInvalidPayload = fmt.Errorf("invalid webhook payload")

	ErrUserNotFound        = fmt.Errorf("user not found")
	ErrAmbiguousIdentifier = fmt.Errorf("ambiguous identifier")
	ErrInvalidRole         = fmt.Errorf(`role must be either "greeter" or "evaluator"`)
	ErrInvalidPhoneNumber  = fmt.Errorf("invalid phone number format")
	ErrInvalidUser         = fmt.Errorf("invalid user")
)
