package enums

import "testing"

func TestDeliveryParamRoundTrip(t *testing.T) {
	cases := []struct {
		wire   string
		filter DeliveryFilter
	}{
		{"all", DeliveryFilterAll},
		{"delivery", DeliveryFilterOnly},
		{"nodelivery", DeliveryFilterExclude},
	}
	for _, tc := range cases {
		got, err := ParseDeliveryParam(tc.wire)
		if err != nil {
			t.Fatalf("ParseDeliveryParam(%q): %v", tc.wire, err)
		}
		if got != tc.filter {
			t.Fatalf("ParseDeliveryParam(%q) = %q, want %q", tc.wire, got, tc.filter)
		}
		if got.WireValue() != tc.wire {
			t.Fatalf("WireValue(%q) = %q, want %q", tc.filter, got.WireValue(), tc.wire)
		}
	}

	if _, err := ParseDeliveryParam("courier"); err == nil {
		t.Fatal("expected error for unknown delivery param")
	}
}

func TestParseAvailabilityParam(t *testing.T) {
	for _, wire := range []string{"all", "inStock", "outOfStock", ""} {
		if _, err := ParseAvailabilityParam(wire); err != nil {
			t.Fatalf("ParseAvailabilityParam(%q): %v", wire, err)
		}
	}
	if _, err := ParseAvailabilityParam("sold"); err == nil {
		t.Fatal("expected error for unknown availability param")
	}
}
