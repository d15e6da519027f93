package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how an invoice was (or will be) paid.
// The zero value is Cash, which is also the documented default.
type PaymentMethod int

const (
	PaymentMethodCash   PaymentMethod = 0
	PaymentMethodCard   PaymentMethod = 1
	PaymentMethodUPI    PaymentMethod = 2
	PaymentMethodCredit PaymentMethod = 3
)

func (p PaymentMethod) String() string {
	names := [...]string{"Cash", "Card", "UPI", "Credit"}
	if int(p) < 0 || int(p) >= len(names) {
		return "Cash"
	}
	return names[p]
}

// ParsePaymentMethod maps a label to its PaymentMethod; unknown or empty
// labels fall back to Cash.
func ParsePaymentMethod(s string) PaymentMethod {
	switch s {
	case "Card":
		return PaymentMethodCard
	case "UPI":
		return PaymentMethodUPI
	case "Credit":
		return PaymentMethodCredit
	default:
		return PaymentMethodCash
	}
}

func (p PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*p = PaymentMethod(i)
		return nil
	}
	*p = ParsePaymentMethod(str)
	return nil
}

func (p PaymentMethod) Value() (driver.Value, error) {
	return int64(p), nil
}

func (p *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*p = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*p = PaymentMethod(v)
	case int:
		*p = PaymentMethod(v)
	}
	return nil
}
