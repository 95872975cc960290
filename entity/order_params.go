package entity

// OrderParams holds the per-checkout values derived from a transaction
// record. Created fresh for every checkout attempt and never mutated.
type OrderParams struct {
	OrderId string
	// AmountMinor is the purchase amount scaled by 10^CurrencyExponent
	AmountMinor int64
	// CurrencyNumeric is the 3-digit ISO 4217 numeric code
	CurrencyNumeric string
	ReturnUrl       string
}

// CurrencyExponent is fixed for all currencies the gateway supports.
const CurrencyExponent = 2
