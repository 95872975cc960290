package internal

import "errors"

// Error kinds surfaced by the signer and the reconciler. Callers match them
// with errors.Is; messages carry the offending values via wrapping.
var (
	// ErrNotConfigured marks a missing credential or order field at signing
	// time. No request may be built from partial input.
	ErrNotConfigured = errors.New("provider not configured")
	// ErrMissingReference marks a notification without an OrderID.
	ErrMissingReference = errors.New("received data with missing reference")
	// ErrUnknownReference marks a notification whose reference matches no
	// known transaction.
	ErrUnknownReference = errors.New("no transaction matching reference")
	// ErrAmbiguousReference marks a reference matching more than one
	// transaction; the uniqueness invariant is checked here, not assumed
	// from storage constraints.
	ErrAmbiguousReference = errors.New("reference matches more than one transaction")
	// ErrMalformedNotification marks a notification missing its response or
	// reason code. The transaction is left unchanged so the gateway may retry.
	ErrMalformedNotification = errors.New("malformed notification")
	// ErrUnsupportedCurrency marks a transaction currency outside the
	// gateway's supported set.
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	// ErrTransactionClosed marks a checkout attempt against a transaction
	// already in a terminal state.
	ErrTransactionClosed = errors.New("transaction already closed")
	// ErrSignatureMismatch marks a redirect or notification whose signature
	// does not match the expected correlation signature.
	ErrSignatureMismatch = errors.New("signature mismatch")
)
