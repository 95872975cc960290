package services

import (
	"bmlpay/entity"
	"context"
	"net/url"
)

type Payments interface {
	RegisterTransaction(ctx context.Context, transaction *entity.Transaction) error
	CheckoutRequest(ctx context.Context, reference string) (*entity.SignedRequest, error)
	Notify(ctx context.Context, data []byte) error
	VerifyReturn(ctx context.Context, query url.Values) error
	CompatibleProviders(currency string, providers []string) []string
}
