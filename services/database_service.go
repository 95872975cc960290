package services

import (
	"bmlpay/entity"
	"context"
)

type Database interface {
	WriteLogMessage(data Data) error

	SaveTransaction(ctx context.Context, transaction *entity.Transaction) error
	// FindTransactionsByReference returns every transaction matching the
	// merchant reference; callers enforce the exactly-one invariant.
	FindTransactionsByReference(ctx context.Context, reference string) ([]entity.Transaction, error)
	// ApplyTransactionOutcome moves a pending transaction to a terminal state
	// and records the gateway reference in the same write. It returns false
	// when no pending transaction matched, so a duplicate notification is a
	// no-op rather than a second transition.
	ApplyTransactionOutcome(ctx context.Context, reference string, providerReference string, state string, message string) (bool, error)

	SaveNotification(ctx context.Context, notification *entity.Notification) error
}

type Data interface {
	DataType() string
}
