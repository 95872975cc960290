package entity

import "time"

// Notification carries the fields of an inbound gateway callback. The input
// is untrusted: any field may be absent and extra fields are ignored.
// JSON/BSON keys match the BML wire format exactly.
type Notification struct {
	OrderId      string `json:"OrderID" bson:"order_id"`
	ReferenceNo  string `json:"ReferenceNo" bson:"reference_no"`
	ResponseCode string `json:"ResponseCode" bson:"response_code"`
	ReasonCode   string `json:"ReasonCode" bson:"reason_code"`
	ReasonText   string `json:"ReasonText" bson:"reason_text"`
	// Signature is only present on the redirect leg, not on server-to-server
	// notifications.
	Signature    string    `json:"Signature,omitempty" bson:"signature,omitempty"`
	TimeReceived time.Time `json:"time_received" bson:"time_received"`
}

func (n *Notification) DataType() string {
	return "notification"
}
