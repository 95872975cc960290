package entity

// CodeTables holds the gateway code mappings: ISO 4217 alpha to numeric
// currency codes, the supported-currency set, and the reason-code sets that
// refine the gateway's response codes. The value is built once at startup and
// injected into the components that need it; treat it as immutable.
type CodeTables struct {
	currencyNumeric map[string]string
	supported       map[string]bool
	doneReasons     map[string]bool
	cancelReasons   map[string]bool
}

// NewCodeTables builds the lookup tables. Supported lists the currencies the
// gateway accepts; a currency listed here must also have a numeric mapping.
func NewCodeTables(supported []string) *CodeTables {
	tables := &CodeTables{
		// ISO 4217 numeric codes; extend by adding entries, never derive
		currencyNumeric: map[string]string{
			"MVR": "462",
			"USD": "840",
		},
		supported:     make(map[string]bool),
		doneReasons:   map[string]bool{"1": true},
		cancelReasons: map[string]bool{"36": true},
	}
	for _, currency := range supported {
		tables.supported[currency] = true
	}
	return tables
}

// CurrencyNumeric returns the 3-digit numeric code for an alpha currency
// code. The second value is false for unknown currencies.
func (t *CodeTables) CurrencyNumeric(alpha string) (string, bool) {
	numeric, ok := t.currencyNumeric[alpha]
	return numeric, ok
}

// IsSupported reports whether the gateway accepts the currency.
func (t *CodeTables) IsSupported(alpha string) bool {
	return t.supported[alpha]
}

// IsDoneReason reports whether the reason code confirms a successful payment.
func (t *CodeTables) IsDoneReason(code string) bool {
	return t.doneReasons[code]
}

// IsCancelReason reports whether the reason code confirms a cancellation.
func (t *CodeTables) IsCancelReason(code string) bool {
	return t.cancelReasons[code]
}
