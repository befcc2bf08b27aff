package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrOperationFailed = errors.New("operation failed")

	// Infra errors
	ErrInvalidExecContext = errors.New("invalid execution context")

	// Wizard protocol errors. None of these mutate session state.
	ErrActionNotAllowed = errors.New("action not allowed in current mode")
	ErrWizardCompleted  = errors.New("wizard already completed")
	ErrSessionBusy      = errors.New("session is processing another action")
	ErrSubmitInFlight   = errors.New("a submit is already in flight")
	ErrNoPendingSubmit  = errors.New("no submit is pending")
	ErrUnsupportedPage  = errors.New("page not supported")

	// Backend errors
	ErrInvalidCredentials = errors.New("invalid email or passcode")
	ErrStoreUnavailable   = errors.New("store unavailable")
)
