package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ShopSnapshot is the shop data copied onto a listing at create/update time.
// It is refreshed by an explicit shop-update fan-out, never at read time, so
// it can lag behind the shop record.
type ShopSnapshot struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Addresses   AddressList `json:"addresses"`
	HasDelivery bool        `json:"has_delivery"`
}

// City returns the snapshot's primary address city.
func (s ShopSnapshot) City() string {
	return s.Addresses.PrimaryCity()
}

// Value marshals the snapshot into JSON for Postgres.
func (s ShopSnapshot) Value() (driver.Value, error) {
	buf, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the snapshot.
func (s *ShopSnapshot) Scan(value interface{}) error {
	if value == nil {
		*s = ShopSnapshot{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("shop snapshot: unsupported scan type %T", value)
	}

	var result ShopSnapshot
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*s = result
	return nil
}
