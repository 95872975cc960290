package internal

import "bmlpay/entity"

// CompatibilityFilter removes this provider from a candidate list when the
// transaction currency is not in the gateway's supported set. Pure; the
// supported set comes from the injected code tables.
type CompatibilityFilter struct {
	providerCode string
	tables       *entity.CodeTables
}

func NewCompatibilityFilter(providerCode string, tables *entity.CodeTables) *CompatibilityFilter {
	return &CompatibilityFilter{
		providerCode: providerCode,
		tables:       tables,
	}
}

// IsCompatible reports whether the gateway can process the currency.
func (f *CompatibilityFilter) IsCompatible(currency string) bool {
	return f.tables.IsSupported(currency)
}

// FilterProviders returns the candidate list with this provider removed iff
// the currency is unsupported. Other provider codes pass through untouched.
func (f *CompatibilityFilter) FilterProviders(currency string, providers []string) []string {
	if f.IsCompatible(currency) {
		return providers
	}
	filtered := make([]string, 0, len(providers))
	for _, code := range providers {
		if code == f.providerCode {
			continue
		}
		filtered = append(filtered, code)
	}
	return filtered
}
