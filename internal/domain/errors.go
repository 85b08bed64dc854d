package domain

import (
	"errors"
	"fmt"
)

// Category sentinels. Every domain failure wraps exactly one of these so
// callers can classify with errors.Is at the operation boundary.
var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrNotAuthorized     = errors.New("actor not authorized")
	ErrNotEditable       = errors.New("contract is not editable")
	ErrCurrencyMismatch  = errors.New("currency mismatch")
	ErrNegativeAmount    = errors.New("amount cannot be negative")
)

// Guard-specific sentinels. Each wraps its category sentinel, so both
// errors.Is(err, ErrSignatureRequired) and errors.Is(err, ErrInvalidTransition)
// match.
var (
	ErrSignatureRequired      = fmt.Errorf("%w: payer signature required", ErrInvalidTransition)
	ErrPaymentMethodRequired  = fmt.Errorf("%w: payment method not selected", ErrInvalidTransition)
	ErrNoScheduleForFrequency = fmt.Errorf("%w: no schedule for frequency", ErrValidation)
)
