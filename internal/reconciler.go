package internal

import (
	"bmlpay/entity"
	"bmlpay/services"
	"context"
	"fmt"
)

// Response codes of the gateway's two-level discriminant. The response code
// buckets the transport outcome; the reason code refines it. Both levels
// must match for a Done or Cancelled classification.
const (
	responseApproved  = "1"
	responseCancelled = "2"
)

// Outcome is the canonical result of classifying a notification.
type Outcome struct {
	State   string
	Message string
}

// Reconciler turns an untrusted inbound notification into a transaction
// resolution and a canonical outcome. It never mutates state itself; the
// decision is a pure function of the notification, so calling it twice with
// the same input is safe. Applying the outcome is the caller's job.
type Reconciler struct {
	database services.Database
	tables   *entity.CodeTables
	logger   services.LogHandler
}

func NewReconciler(tables *entity.CodeTables) *Reconciler {
	return &Reconciler{
		tables: tables,
	}
}

func (r *Reconciler) SetDatabase(database services.Database) {
	r.database = database
}

func (r *Reconciler) SetLogger(logger services.LogHandler) {
	r.logger = logger
}

// Reconcile resolves the notification to exactly one known transaction,
// validates the required fields and classifies the outcome. Any error means
// nothing may be written: either the input is malformed or the reference
// cannot be resolved, and the transaction must stay untouched so the gateway
// can retry.
func (r *Reconciler) Reconcile(ctx context.Context, notification *entity.Notification) (*entity.Transaction, Outcome, error) {
	transaction, err := r.Resolve(ctx, notification.OrderId)
	if err != nil {
		return nil, Outcome{}, err
	}

	outcome, err := r.Classify(notification)
	if err != nil {
		return nil, Outcome{}, err
	}

	if outcome.State == entity.StateError && r.logger != nil {
		r.logger.Warn(fmt.Sprintf("transaction %s: unmapped or failed outcome: response code %s, reason code %s",
			transaction.Reference, notification.ResponseCode, notification.ReasonCode))
	}

	return transaction, outcome, nil
}

// Resolve finds the single transaction matching the merchant reference.
// Zero matches and multiple matches are both errors; the exactly-one
// invariant is checked here rather than assumed from a storage constraint.
func (r *Reconciler) Resolve(ctx context.Context, reference string) (*entity.Transaction, error) {
	if reference == "" {
		return nil, ErrMissingReference
	}
	if r.database == nil {
		return nil, fmt.Errorf("database not set")
	}

	transactions, err := r.database.FindTransactionsByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	if len(transactions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownReference, reference)
	}
	if len(transactions) > 1 {
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousReference, reference)
	}
	return &transactions[0], nil
}

// Classify maps the gateway's response/reason code pair onto a canonical
// outcome. A response code without its matching reason code falls through to
// the error outcome; it is never coerced into the response code's apparent
// meaning. Unmapped combinations (e.g. reason code 10, invalid merchant) are
// faithfully recorded as errors, never as success.
func (r *Reconciler) Classify(notification *entity.Notification) (Outcome, error) {
	responseCode := notification.ResponseCode
	reasonCode := notification.ReasonCode

	if responseCode == "" {
		return Outcome{}, fmt.Errorf("%w: missing response code", ErrMalformedNotification)
	}
	if reasonCode == "" {
		return Outcome{}, fmt.Errorf("%w: missing reason code", ErrMalformedNotification)
	}

	if responseCode == responseApproved && r.tables.IsDoneReason(reasonCode) {
		return Outcome{State: entity.StateDone}, nil
	}
	if responseCode == responseCancelled && r.tables.IsCancelReason(reasonCode) {
		return Outcome{State: entity.StateCancelled}, nil
	}

	// ReasonText may legitimately be absent; an empty string is substituted
	// in the diagnostic only, never in the state decision.
	message := fmt.Sprintf("payment not accepted: response code %s, reason code %s, reason: %s",
		responseCode, reasonCode, notification.ReasonText)
	return Outcome{State: entity.StateError, Message: message}, nil
}
