package entity

// Provider modes; the mode selects which gateway URL a checkout is sent to.
const (
	ModeTest = "test"
	ModeLive = "live"
)

// Credentials identify the merchant with the gateway. The value is owned by
// the host configuration and passed to the signer by reference; the signer
// never stores it.
type Credentials struct {
	MerchantId string
	AcquirerId string
	// Passcode is the shared secret prepended to every signing string
	Passcode string
	LiveUrl  string
	TestUrl  string
	Mode     string
}

// ApiUrl returns the gateway endpoint matching the provider mode.
func (c *Credentials) ApiUrl() string {
	if c.Mode == ModeLive {
		return c.LiveUrl
	}
	return c.TestUrl
}
