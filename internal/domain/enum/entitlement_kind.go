package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// EntitlementKind represents how a booking's fee is offset or settled.
// A voucher discounts the charge; a package replaces the charge with a
// prepaid pass. The two are mutually exclusive.
type EntitlementKind int

const (
	EntitlementNone    EntitlementKind = 0
	EntitlementVoucher EntitlementKind = 1
	EntitlementPackage EntitlementKind = 2
)

func (k EntitlementKind) String() string {
	names := [...]string{"none", "voucher", "package"}
	if int(k) < 0 || int(k) >= len(names) {
		return "none"
	}
	return names[k]
}

func (k EntitlementKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *EntitlementKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = EntitlementKind(i)
		return nil
	}
	switch str {
	case "none":
		*k = EntitlementNone
	case "voucher":
		*k = EntitlementVoucher
	case "package":
		*k = EntitlementPackage
	}
	return nil
}

// ParseEntitlementKind maps the wire form to an EntitlementKind.
// Unknown or empty strings fall back to EntitlementNone.
func ParseEntitlementKind(s string) EntitlementKind {
	switch s {
	case "voucher":
		return EntitlementVoucher
	case "package":
		return EntitlementPackage
	default:
		return EntitlementNone
	}
}

func (k EntitlementKind) Value() (driver.Value, error) {
	return int64(k), nil
}

func (k *EntitlementKind) Scan(value interface{}) error {
	if value == nil {
		*k = EntitlementNone
		return nil
	}
	switch v := value.(type) {
	case int64:
		*k = EntitlementKind(v)
	case int:
		*k = EntitlementKind(v)
	}
	return nil
}
