// Package entity defines data models for the BML payment adapter service.
package entity

import "time"

// Transaction states. A transaction starts as pending and moves to exactly
// one terminal state; no transition out of a terminal state exists.
const (
	StatePending   = "pending"
	StateDone      = "done"
	StateCancelled = "cancelled"
	StateError     = "error"
)

// Transaction is the locally tracked payment record that gateway notifications
// are reconciled against. Reference is the merchant-side order id sent to the
// gateway as OrderID and must be unique per transaction.
type Transaction struct {
	Reference    string  `json:"reference" bson:"reference"`
	ProviderCode string  `json:"provider_code" bson:"provider_code"`
	Amount       float64 `json:"amount" bson:"amount"`
	Currency     string  `json:"currency" bson:"currency"`
	State        string  `json:"state" bson:"state"`
	StateMessage string  `json:"state_message,omitempty" bson:"state_message"`
	// ProviderReference is the gateway-side reference (ReferenceNo), recorded
	// for correlation only; it never drives the state decision.
	ProviderReference string    `json:"provider_reference,omitempty" bson:"provider_reference"`
	TimeCreated       time.Time `json:"time_created" bson:"time_created"`
	TimeClosed        time.Time `json:"time_closed,omitempty" bson:"time_closed"`
}

// IsTerminal reports whether the transaction already reached a final state.
func (t *Transaction) IsTerminal() bool {
	return t.State == StateDone || t.State == StateCancelled || t.State == StateError
}
