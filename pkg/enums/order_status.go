package enums

import "fmt"

// OrderStatus tracks an order through the stringing pipeline.
type OrderStatus string

const (
	OrderStatusPaid               OrderStatus = "paid"
	OrderStatusDroppedOff         OrderStatus = "dropped_off"
	OrderStatusPickedUp           OrderStatus = "picked_up"
	OrderStatusStringing          OrderStatus = "stringing"
	OrderStatusStrung             OrderStatus = "strung"
	OrderStatusReadyForPickup     OrderStatus = "ready_for_pickup"
	OrderStatusPickedUpByCustomer OrderStatus = "picked_up_by_customer"
	OrderStatusReview             OrderStatus = "review"
	OrderStatusCompleted          OrderStatus = "completed"

	// Legacy values from the original five-stage flow. Historical rows still
	// carry them; they are accepted on read and rejected as transition targets.
	OrderStatusLegacyInProgress     OrderStatus = "in_progress"
	OrderStatusLegacyOnHold         OrderStatus = "on_hold"
	OrderStatusLegacyCustomerReview OrderStatus = "customer_review"
)

// orderStatusFlow is the ordered progression; index == rank.
var orderStatusFlow = []OrderStatus{
	OrderStatusPaid,
	OrderStatusDroppedOff,
	OrderStatusPickedUp,
	OrderStatusStringing,
	OrderStatusStrung,
	OrderStatusReadyForPickup,
	OrderStatusPickedUpByCustomer,
	OrderStatusReview,
	OrderStatusCompleted,
}

var legacyOrderStatuses = []OrderStatus{
	OrderStatusLegacyInProgress,
	OrderStatusLegacyOnHold,
	OrderStatusLegacyCustomerReview,
}

// RankOwner identifies which actor is allowed to move an order into a rank.
type RankOwner string

const (
	RankOwnerSystem   RankOwner = "system"
	RankOwnerCustomer RankOwner = "customer"
	RankOwnerAdmin    RankOwner = "admin"
)

// timestampColumns maps each status to the column stamped on entry. "paid" has
// none; legacy statuses never stamp.
var timestampColumns = map[OrderStatus]string{
	OrderStatusDroppedOff:         "dropped_off_at",
	OrderStatusPickedUp:           "picked_up_at",
	OrderStatusStringing:          "stringing_at",
	OrderStatusStrung:             "strung_at",
	OrderStatusReadyForPickup:     "ready_for_pickup_at",
	OrderStatusPickedUpByCustomer: "picked_up_by_customer_at",
	OrderStatusReview:             "review_at",
	OrderStatusCompleted:          "completed_at",
}

var rankOwners = map[OrderStatus]RankOwner{
	OrderStatusPaid:               RankOwnerSystem,
	OrderStatusDroppedOff:         RankOwnerCustomer,
	OrderStatusPickedUp:           RankOwnerAdmin,
	OrderStatusStringing:          RankOwnerAdmin,
	OrderStatusStrung:             RankOwnerAdmin,
	OrderStatusReadyForPickup:     RankOwnerAdmin,
	OrderStatusPickedUpByCustomer: RankOwnerCustomer,
	OrderStatusReview:             RankOwnerAdmin,
	OrderStatusCompleted:          RankOwnerAdmin,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// Rank returns the position of the status in the current flow, or -1 for
// legacy and unknown values.
func (s OrderStatus) Rank() int {
	for i, candidate := range orderStatusFlow {
		if candidate == s {
			return i
		}
	}
	return -1
}

// IsLegacy reports whether the value belongs to the retired vocabulary.
func (s OrderStatus) IsLegacy() bool {
	for _, candidate := range legacyOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsValid reports whether the value is readable, current or legacy.
func (s OrderStatus) IsValid() bool {
	return s.Rank() >= 0 || s.IsLegacy()
}

// IsTerminal reports whether the status sits at either end of the flow.
func (s OrderStatus) IsTerminal() bool {
	rank := s.Rank()
	return rank == 0 || rank == len(orderStatusFlow)-1
}

// Owner returns the actor allowed to move an order into this rank.
func (s OrderStatus) Owner() RankOwner {
	if owner, ok := rankOwners[s]; ok {
		return owner
	}
	return RankOwnerAdmin
}

// TimestampColumn returns the column stamped when an order enters this status,
// or "" when the status carries no timestamp.
func (s OrderStatus) TimestampColumn() string {
	return timestampColumns[s]
}

// OrderStatusFlow returns the ordered current-flow vocabulary.
func OrderStatusFlow() []OrderStatus {
	flow := make([]OrderStatus, len(orderStatusFlow))
	copy(flow, orderStatusFlow)
	return flow
}

// OrderStatusAt returns the status at the given rank.
func OrderStatusAt(rank int) (OrderStatus, bool) {
	if rank < 0 || rank >= len(orderStatusFlow) {
		return "", false
	}
	return orderStatusFlow[rank], true
}

// ParseOrderStatus converts raw input into an OrderStatus, accepting legacy
// values for read paths.
func ParseOrderStatus(value string) (OrderStatus, error) {
	status := OrderStatus(value)
	if status.IsValid() {
		return status, nil
	}
	return "", fmt.Errorf("invalid order status %q", value)
}

// ParseTargetOrderStatus converts raw input into a transition target. Legacy
// values are readable but unreachable by new writes.
func ParseTargetOrderStatus(value string) (OrderStatus, error) {
	status := OrderStatus(value)
	if status.Rank() >= 0 {
		return status, nil
	}
	if status.IsLegacy() {
		return "", fmt.Errorf("order status %q is legacy and cannot be a transition target", value)
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
