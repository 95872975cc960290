package entity

// SignedRequest holds the rendering values for the gateway's hosted payment
// page. Field names follow the BML wire format exactly.
type SignedRequest struct {
	ApiUrl string `json:"api_url"`
	// Interface version of the gateway API
	Version string `json:"Version"`
	// Merchant id assigned by BML
	MerchantId string `json:"MerID"`
	// Acquirer id assigned by BML
	AcquirerId string `json:"AcqID"`
	// Merchant-side transaction reference
	OrderId string `json:"OrderID"`
	// Amount in minor units (exponent applied, no decimal point)
	PurchaseAmount string `json:"PurchaseAmt"`
	// ISO 4217 numeric currency code, e.g. "840"
	PurchaseCurrency string `json:"PurchaseCurrency"`
	// Always "2" for the supported currencies
	PurchaseCurrencyExponent string `json:"PurchaseCurrencyExponent"`
	// Fixed literal "SHA1"; the gateway expects it even on flows where the
	// correlation signature is SHA-256
	SignatureMethod string `json:"SignatureMethod"`
	// URL the buyer is sent back to after payment
	ResponseUrl string `json:"MerRespURL"`
	Signature   string `json:"Signature"`
}
