package internal

import (
	"bmlpay/entity"
	"bmlpay/services"
	"context"
	"time"
)

// fakeDatabase is an in-memory services.Database for tests. Its outcome
// apply mirrors the mongo implementation: a compare-and-swap that only
// matches pending transactions.
type fakeDatabase struct {
	transactions  []entity.Transaction
	notifications []entity.Notification
	logs          []services.Data
	applyCalls    int
}

func (f *fakeDatabase) WriteLogMessage(data services.Data) error {
	f.logs = append(f.logs, data)
	return nil
}

func (f *fakeDatabase) SaveTransaction(_ context.Context, transaction *entity.Transaction) error {
	for _, existing := range f.transactions {
		if existing.Reference == transaction.Reference {
			return nil
		}
	}
	f.transactions = append(f.transactions, *transaction)
	return nil
}

func (f *fakeDatabase) FindTransactionsByReference(_ context.Context, reference string) ([]entity.Transaction, error) {
	var found []entity.Transaction
	for _, transaction := range f.transactions {
		if transaction.Reference == reference {
			found = append(found, transaction)
		}
	}
	return found, nil
}

func (f *fakeDatabase) ApplyTransactionOutcome(_ context.Context, reference string, providerReference string, state string, message string) (bool, error) {
	f.applyCalls++
	for i := range f.transactions {
		transaction := &f.transactions[i]
		if transaction.Reference == reference && transaction.State == entity.StatePending {
			transaction.State = state
			transaction.StateMessage = message
			transaction.ProviderReference = providerReference
			transaction.TimeClosed = time.Now()
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDatabase) SaveNotification(_ context.Context, notification *entity.Notification) error {
	f.notifications = append(f.notifications, *notification)
	return nil
}

func (f *fakeDatabase) transaction(reference string) *entity.Transaction {
	for i := range f.transactions {
		if f.transactions[i].Reference == reference {
			return &f.transactions[i]
		}
	}
	return nil
}
