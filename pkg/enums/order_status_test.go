package enums

import "testing"

func TestOrderStatusRank(t *testing.T) {
	cases := []struct {
		status OrderStatus
		rank   int
	}{
		{OrderStatusPaid, 0},
		{OrderStatusDroppedOff, 1},
		{OrderStatusPickedUp, 2},
		{OrderStatusStringing, 3},
		{OrderStatusStrung, 4},
		{OrderStatusReadyForPickup, 5},
		{OrderStatusPickedUpByCustomer, 6},
		{OrderStatusReview, 7},
		{OrderStatusCompleted, 8},
		{OrderStatusLegacyInProgress, -1},
		{OrderStatusLegacyOnHold, -1},
		{OrderStatusLegacyCustomerReview, -1},
		{OrderStatus("bogus"), -1},
	}
	for _, tc := range cases {
		if got := tc.status.Rank(); got != tc.rank {
			t.Errorf("Rank(%q) = %d, want %d", tc.status, got, tc.rank)
		}
	}
}

func TestOrderStatusOwner(t *testing.T) {
	cases := []struct {
		status OrderStatus
		owner  RankOwner
	}{
		{OrderStatusPaid, RankOwnerSystem},
		{OrderStatusDroppedOff, RankOwnerCustomer},
		{OrderStatusPickedUp, RankOwnerAdmin},
		{OrderStatusStringing, RankOwnerAdmin},
		{OrderStatusStrung, RankOwnerAdmin},
		{OrderStatusReadyForPickup, RankOwnerAdmin},
		{OrderStatusPickedUpByCustomer, RankOwnerCustomer},
		{OrderStatusReview, RankOwnerAdmin},
		{OrderStatusCompleted, RankOwnerAdmin},
	}
	for _, tc := range cases {
		if got := tc.status.Owner(); got != tc.owner {
			t.Errorf("Owner(%q) = %q, want %q", tc.status, got, tc.owner)
		}
	}
}

func TestOrderStatusTimestampColumn(t *testing.T) {
	if got := OrderStatusPaid.TimestampColumn(); got != "" {
		t.Errorf("paid should carry no timestamp column, got %q", got)
	}
	if got := OrderStatusLegacyOnHold.TimestampColumn(); got != "" {
		t.Errorf("legacy statuses should carry no timestamp column, got %q", got)
	}

	cases := []struct {
		status OrderStatus
		column string
	}{
		{OrderStatusDroppedOff, "dropped_off_at"},
		{OrderStatusPickedUp, "picked_up_at"},
		{OrderStatusStringing, "stringing_at"},
		{OrderStatusStrung, "strung_at"},
		{OrderStatusReadyForPickup, "ready_for_pickup_at"},
		{OrderStatusPickedUpByCustomer, "picked_up_by_customer_at"},
		{OrderStatusReview, "review_at"},
		{OrderStatusCompleted, "completed_at"},
	}
	for _, tc := range cases {
		if got := tc.status.TimestampColumn(); got != tc.column {
			t.Errorf("TimestampColumn(%q) = %q, want %q", tc.status, got, tc.column)
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	if !OrderStatusPaid.IsTerminal() {
		t.Error("paid should be terminal at the low end")
	}
	if !OrderStatusCompleted.IsTerminal() {
		t.Error("completed should be terminal at the high end")
	}
	if OrderStatusStringing.IsTerminal() {
		t.Error("stringing should not be terminal")
	}
	if OrderStatusLegacyOnHold.IsTerminal() {
		t.Error("legacy statuses should not be terminal")
	}
}

func TestOrderStatusAt(t *testing.T) {
	if status, ok := OrderStatusAt(0); !ok || status != OrderStatusPaid {
		t.Errorf("OrderStatusAt(0) = %q, %v", status, ok)
	}
	if status, ok := OrderStatusAt(8); !ok || status != OrderStatusCompleted {
		t.Errorf("OrderStatusAt(8) = %q, %v", status, ok)
	}
	if _, ok := OrderStatusAt(-1); ok {
		t.Error("negative rank should not resolve")
	}
	if _, ok := OrderStatusAt(9); ok {
		t.Error("out-of-range rank should not resolve")
	}
}

func TestParseOrderStatus(t *testing.T) {
	if status, err := ParseOrderStatus("ready_for_pickup"); err != nil || status != OrderStatusReadyForPickup {
		t.Errorf("ParseOrderStatus(ready_for_pickup) = %q, %v", status, err)
	}
	// Legacy values are readable
	if status, err := ParseOrderStatus("on_hold"); err != nil || status != OrderStatusLegacyOnHold {
		t.Errorf("ParseOrderStatus(on_hold) = %q, %v", status, err)
	}
	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Error("unknown status should not parse")
	}
}

func TestParseTargetOrderStatus(t *testing.T) {
	if status, err := ParseTargetOrderStatus("strung"); err != nil || status != OrderStatusStrung {
		t.Errorf("ParseTargetOrderStatus(strung) = %q, %v", status, err)
	}
	if _, err := ParseTargetOrderStatus("customer_review"); err == nil {
		t.Error("legacy status should be rejected as transition target")
	}
	if _, err := ParseTargetOrderStatus("shipped"); err == nil {
		t.Error("unknown status should be rejected as transition target")
	}
}

func TestOrderStatusFlowIsACopy(t *testing.T) {
	flow := OrderStatusFlow()
	if len(flow) != 9 {
		t.Fatalf("expected 9 statuses in the flow, got %d", len(flow))
	}
	flow[0] = OrderStatus("mutated")
	if orderStatusFlow[0] != OrderStatusPaid {
		t.Error("mutating the returned slice must not touch the flow table")
	}
}
