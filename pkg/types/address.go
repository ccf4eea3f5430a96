package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// ShopAddress is one pickup point of a shop.
type ShopAddress struct {
	City   string `json:"city"`
	Street string `json:"street"`
}

// AddressList is the ordered address set of a shop, persisted as JSONB.
// The first entry is the primary address whose city gets denormalized
// onto the shop's listings.
type AddressList []ShopAddress

// Primary returns the first address, or false when the list is empty.
func (l AddressList) Primary() (ShopAddress, bool) {
	if len(l) == 0 {
		return ShopAddress{}, false
	}
	return l[0], true
}

// PrimaryCity returns the city of the first address with non-blank city.
func (l AddressList) PrimaryCity() string {
	for _, addr := range l {
		if city := strings.TrimSpace(addr.City); city != "" {
			return city
		}
	}
	return ""
}

// Value marshals the list into JSON for Postgres.
func (l AddressList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	buf, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the list.
func (l *AddressList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("address list: unsupported scan type %T", value)
	}

	var result AddressList
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*l = result
	return nil
}
