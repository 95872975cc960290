package internal

import (
	"bmlpay/entity"
	"fmt"

	"gitee.com/golang-module/dongle"
)

// Signer produces the keyed signatures of the BML protocol. The shared
// secret is concatenated into the signing string (not used as an HMAC key)
// and the raw digest is Base64-encoded; both details are fixed by the
// gateway specification.
type Signer struct{}

func NewSigner() *Signer {
	return &Signer{}
}

// PaymentRequestSignature signs the payment-initiation payload. The signing
// string is the fixed-order concatenation, without separators, of secret,
// merchant id, acquirer id, order id, amount in minor units and the numeric
// currency code, digested with SHA-1.
//
// Every interpolated field must be non-empty; signing with a substituted
// empty string would bind the signature to the wrong input.
func (s *Signer) PaymentRequestSignature(credentials *entity.Credentials, orderId string, amountMinor int64, currencyNumeric string) (string, error) {
	if err := checkCredentials(credentials); err != nil {
		return "", err
	}
	if orderId == "" {
		return "", fmt.Errorf("%w: empty order id", ErrNotConfigured)
	}
	if currencyNumeric == "" {
		return "", fmt.Errorf("%w: empty currency code", ErrNotConfigured)
	}

	signingString := fmt.Sprintf("%s%s%s%s%d%s",
		credentials.Passcode, credentials.MerchantId, credentials.AcquirerId,
		orderId, amountMinor, currencyNumeric)

	return dongle.Encrypt.FromString(signingString).BySha1().ToBase64String(), nil
}

// CorrelationSignature signs the shorter correlation string of secret,
// merchant id, acquirer id and order id. The redirect leg uses SHA-256 while
// the server-to-server notification leg uses SHA-1. The asymmetry is a quirk
// of the gateway protocol; keep the two branches separate.
func (s *Signer) CorrelationSignature(credentials *entity.Credentials, orderId string, isRedirect bool) (string, error) {
	if err := checkCredentials(credentials); err != nil {
		return "", err
	}
	if orderId == "" {
		return "", fmt.Errorf("%w: empty order id", ErrNotConfigured)
	}

	signingString := fmt.Sprintf("%s%s%s%s",
		credentials.Passcode, credentials.MerchantId, credentials.AcquirerId, orderId)

	if isRedirect {
		return dongle.Encrypt.FromString(signingString).BySha256().ToBase64String(), nil
	}
	return dongle.Encrypt.FromString(signingString).BySha1().ToBase64String(), nil
}

func checkCredentials(credentials *entity.Credentials) error {
	if credentials == nil {
		return fmt.Errorf("%w: no credentials", ErrNotConfigured)
	}
	if credentials.Passcode == "" {
		return fmt.Errorf("%w: empty passcode", ErrNotConfigured)
	}
	if credentials.MerchantId == "" {
		return fmt.Errorf("%w: empty merchant id", ErrNotConfigured)
	}
	if credentials.AcquirerId == "" {
		return fmt.Errorf("%w: empty acquirer id", ErrNotConfigured)
	}
	return nil
}
