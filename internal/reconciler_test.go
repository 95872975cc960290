package internal

import (
	"bmlpay/entity"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReconciler(database *fakeDatabase) *Reconciler {
	reconciler := NewReconciler(entity.NewCodeTables([]string{"USD", "MVR"}))
	reconciler.SetDatabase(database)
	reconciler.SetLogger(NewLogger("reconciler", false, nil))
	return reconciler
}

func pendingTransaction(reference string) entity.Transaction {
	return entity.Transaction{
		Reference:    reference,
		ProviderCode: "bml",
		Amount:       10.50,
		Currency:     "USD",
		State:        entity.StatePending,
	}
}

func TestReconcileDone(t *testing.T) {
	database := &fakeDatabase{transactions: []entity.Transaction{pendingTransaction("S0001-42")}}
	reconciler := newTestReconciler(database)

	transaction, outcome, err := reconciler.Reconcile(context.Background(), &entity.Notification{
		OrderId:      "S0001-42",
		ReferenceNo:  "BML-778899",
		ResponseCode: "1",
		ReasonCode:   "1",
	})
	require.NoError(t, err)
	assert.Equal(t, "S0001-42", transaction.Reference)
	assert.Equal(t, entity.StateDone, outcome.State)
	assert.Empty(t, outcome.Message)
}

func TestReconcileCancelled(t *testing.T) {
	database := &fakeDatabase{transactions: []entity.Transaction{pendingTransaction("S0001-42")}}
	reconciler := newTestReconciler(database)

	_, outcome, err := reconciler.Reconcile(context.Background(), &entity.Notification{
		OrderId:      "S0001-42",
		ResponseCode: "2",
		ReasonCode:   "36",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StateCancelled, outcome.State)
}

func TestReconcileMismatchedReasonIsError(t *testing.T) {
	database := &fakeDatabase{transactions: []entity.Transaction{pendingTransaction("S0001-42")}}
	reconciler := newTestReconciler(database)

	// response code says approved but the reason code does not confirm it;
	// this must never be coerced into a success
	_, outcome, err := reconciler.Reconcile(context.Background(), &entity.Notification{
		OrderId:      "S0001-42",
		ResponseCode: "1",
		ReasonCode:   "99",
		ReasonText:   "format error",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StateError, outcome.State)
	assert.Contains(t, outcome.Message, "response code 1")
	assert.Contains(t, outcome.Message, "reason code 99")
	assert.Contains(t, outcome.Message, "format error")
}

func TestReconcileInvalidMerchantIsError(t *testing.T) {
	database := &fakeDatabase{transactions: []entity.Transaction{pendingTransaction("S0001-42")}}
	reconciler := newTestReconciler(database)

	_, outcome, err := reconciler.Reconcile(context.Background(), &entity.Notification{
		OrderId:      "S0001-42",
		ResponseCode: "2",
		ReasonCode:   "10",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StateError, outcome.State)
}

func TestReconcileMissingReference(t *testing.T) {
	database := &fakeDatabase{transactions: []entity.Transaction{pendingTransaction("S0001-42")}}
	reconciler := newTestReconciler(database)

	_, _, err := reconciler.Reconcile(context.Background(), &entity.Notification{
		ResponseCode: "1",
		ReasonCode:   "1",
	})
	assert.True(t, errors.Is(err, ErrMissingReference))
}

func TestReconcileUnknownReference(t *testing.T) {
	database := &fakeDatabase{}
	reconciler := newTestReconciler(database)

	_, _, err := reconciler.Reconcile(context.Background(), &entity.Notification{
		OrderId:      "S9999-00",
		ResponseCode: "1",
		ReasonCode:   "1",
	})
	assert.True(t, errors.Is(err, ErrUnknownReference))
	assert.Contains(t, err.Error(), "S9999-00")
}

func TestReconcileAmbiguousReference(t *testing.T) {
	database := &fakeDatabase{transactions: []entity.Transaction{
		pendingTransaction("S0001-42"),
	}}
	database.transactions = append(database.transactions, pendingTransaction("S0001-42"))
	reconciler := newTestReconciler(database)

	_, _, err := reconciler.Reconcile(context.Background(), &entity.Notification{
		OrderId:      "S0001-42",
		ResponseCode: "1",
		ReasonCode:   "1",
	})
	assert.True(t, errors.Is(err, ErrAmbiguousReference))
}

func TestReconcileMalformedNotification(t *testing.T) {
	database := &fakeDatabase{transactions: []entity.Transaction{pendingTransaction("S0001-42")}}
	reconciler := newTestReconciler(database)

	_, _, err := reconciler.Reconcile(context.Background(), &entity.Notification{
		OrderId:    "S0001-42",
		ReasonCode: "1",
	})
	assert.True(t, errors.Is(err, ErrMalformedNotification))
	assert.Contains(t, err.Error(), "response code")

	_, _, err = reconciler.Reconcile(context.Background(), &entity.Notification{
		OrderId:      "S0001-42",
		ResponseCode: "1",
	})
	assert.True(t, errors.Is(err, ErrMalformedNotification))
	assert.Contains(t, err.Error(), "reason code")
}

func TestClassifyIsPureAndRepeatable(t *testing.T) {
	reconciler := newTestReconciler(&fakeDatabase{})
	notification := &entity.Notification{
		OrderId:      "S0001-42",
		ResponseCode: "1",
		ReasonCode:   "1",
	}

	first, err := reconciler.Classify(notification)
	require.NoError(t, err)
	second, err := reconciler.Classify(notification)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
