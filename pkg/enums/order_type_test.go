package enums

import "testing"

func TestParseOrderType(t *testing.T) {
	if ot, err := ParseOrderType("service"); err != nil || ot != OrderTypeService {
		t.Errorf("ParseOrderType(service) = %q, %v", ot, err)
	}
	if ot, err := ParseOrderType("product"); err != nil || ot != OrderTypeProduct {
		t.Errorf("ParseOrderType(product) = %q, %v", ot, err)
	}
	if _, err := ParseOrderType("subscription"); err == nil {
		t.Error("unknown order type should not parse")
	}
}

func TestOrderTypeOrDefault(t *testing.T) {
	cases := []struct {
		in   string
		want OrderType
	}{
		{"service", OrderTypeService},
		{"product", OrderTypeProduct},
		{"", OrderTypeService},
		{"Service", OrderTypeService},
		{"whatever", OrderTypeService},
	}
	for _, tc := range cases {
		if got := OrderTypeOrDefault(tc.in); got != tc.want {
			t.Errorf("OrderTypeOrDefault(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
