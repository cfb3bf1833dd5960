package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PackageType represents the kind of prepaid pass bundle
type PackageType int

const (
	PackageTypeFullDay   PackageType = 0
	PackageTypeHalfDay   PackageType = 1
	PackageTypeStudyHour PackageType = 2
)

func (t PackageType) String() string {
	names := [...]string{"full-day", "half-day", "study-hour"}
	if int(t) < 0 || int(t) >= len(names) {
		return "full-day"
	}
	return names[t]
}

func (t PackageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *PackageType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = PackageType(i)
		return nil
	}
	switch str {
	case "full-day":
		*t = PackageTypeFullDay
	case "half-day":
		*t = PackageTypeHalfDay
	case "study-hour":
		*t = PackageTypeStudyHour
	}
	return nil
}

// ParsePackageType maps the wire form to a PackageType
func ParsePackageType(s string) PackageType {
	switch s {
	case "half-day":
		return PackageTypeHalfDay
	case "study-hour":
		return PackageTypeStudyHour
	default:
		return PackageTypeFullDay
	}
}

func (t PackageType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *PackageType) Scan(value interface{}) error {
	if value == nil {
		*t = PackageTypeFullDay
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = PackageType(v)
	case int:
		*t = PackageType(v)
	}
	return nil
}
