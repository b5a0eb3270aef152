package checkout

import (
	"math/rand/v2"
	"strconv"
)

// Pickup codes are four digits, 1000 through 9999, so they are easy to read
// over a counter. Uniqueness is enforced by the orders table, not here.
const (
	pickupCodeMin = 1000
	pickupCodeMax = 9999

	// maxPickupCodeAttempts bounds the insert retries when generated codes
	// collide with live orders.
	maxPickupCodeAttempts = 25
)

func randomPickupCode() string {
	return strconv.Itoa(pickupCodeMin + rand.IntN(pickupCodeMax-pickupCodeMin+1))
}

// isPickupCode reports whether the value looks like a code we issued.
func isPickupCode(value string) bool {
	if len(value) != 4 {
		return false
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return false
	}
	return n >= pickupCodeMin && n <= pickupCodeMax
}
