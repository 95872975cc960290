package internal

import (
	"bmlpay/entity"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCredentials() *entity.Credentials {
	return &entity.Credentials{
		MerchantId: "87000021",
		AcquirerId: "00212345",
		Passcode:   "sekrit99",
		LiveUrl:    "https://gateway.example/live",
		TestUrl:    "https://gateway.example/test",
		Mode:       entity.ModeTest,
	}
}

func TestPaymentRequestSignature(t *testing.T) {
	signer := NewSigner()
	credentials := testCredentials()

	signature, err := signer.PaymentRequestSignature(credentials, "S0001-42", 1050, "840")
	require.NoError(t, err)
	// base64(sha1("sekrit99" + "87000021" + "00212345" + "S0001-42" + "1050" + "840"))
	assert.Equal(t, "g11WmupJ7SWqerow9NACOhHnLzA=", signature)

	// deterministic: same inputs, byte-identical signature
	again, err := signer.PaymentRequestSignature(credentials, "S0001-42", 1050, "840")
	require.NoError(t, err)
	assert.Equal(t, signature, again)
}

func TestPaymentRequestSignatureFieldSensitivity(t *testing.T) {
	signer := NewSigner()
	credentials := testCredentials()

	base, err := signer.PaymentRequestSignature(credentials, "S0001-42", 1050, "840")
	require.NoError(t, err)

	changedAmount, err := signer.PaymentRequestSignature(credentials, "S0001-42", 1051, "840")
	require.NoError(t, err)
	assert.Equal(t, "RRKym0TXNd2equqbgKGC2v3QeC0=", changedAmount)
	assert.NotEqual(t, base, changedAmount)

	changedCurrency, err := signer.PaymentRequestSignature(credentials, "S0001-42", 1050, "462")
	require.NoError(t, err)
	assert.NotEqual(t, base, changedCurrency)

	changedOrder, err := signer.PaymentRequestSignature(credentials, "S0001-43", 1050, "840")
	require.NoError(t, err)
	assert.NotEqual(t, base, changedOrder)

	other := testCredentials()
	other.Passcode = "sekrit00"
	changedSecret, err := signer.PaymentRequestSignature(other, "S0001-42", 1050, "840")
	require.NoError(t, err)
	assert.NotEqual(t, base, changedSecret)
}

func TestCorrelationSignatureBranches(t *testing.T) {
	signer := NewSigner()
	credentials := testCredentials()

	redirect, err := signer.CorrelationSignature(credentials, "S0001-42", true)
	require.NoError(t, err)
	// SHA-256 digest, 32 bytes before Base64
	assert.Equal(t, "ZUWFzBOuuvWhHKr3w3Xwgjf7Bdzhe3Fe/dOIwpLjf38=", redirect)

	notification, err := signer.CorrelationSignature(credentials, "S0001-42", false)
	require.NoError(t, err)
	// SHA-1 digest, 20 bytes before Base64
	assert.Equal(t, "LVcJRCb2gN3Qk8BGmCD/ludKZP0=", notification)

	// the two legs must not produce the same signature for the same input
	assert.NotEqual(t, redirect, notification)
	assert.Greater(t, len(redirect), len(notification))
}

func TestSignerRejectsMissingFields(t *testing.T) {
	signer := NewSigner()

	cases := map[string]*entity.Credentials{
		"no credentials": nil,
		"empty passcode": {MerchantId: "87000021", AcquirerId: "00212345"},
		"empty merchant": {AcquirerId: "00212345", Passcode: "sekrit99"},
		"empty acquirer": {MerchantId: "87000021", Passcode: "sekrit99"},
	}
	for name, credentials := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := signer.PaymentRequestSignature(credentials, "S0001-42", 1050, "840")
			assert.True(t, errors.Is(err, ErrNotConfigured))

			_, err = signer.CorrelationSignature(credentials, "S0001-42", true)
			assert.True(t, errors.Is(err, ErrNotConfigured))
		})
	}

	credentials := testCredentials()
	_, err := signer.PaymentRequestSignature(credentials, "", 1050, "840")
	assert.True(t, errors.Is(err, ErrNotConfigured))

	_, err = signer.PaymentRequestSignature(credentials, "S0001-42", 1050, "")
	assert.True(t, errors.Is(err, ErrNotConfigured))

	_, err = signer.CorrelationSignature(credentials, "", false)
	assert.True(t, errors.Is(err, ErrNotConfigured))
}
