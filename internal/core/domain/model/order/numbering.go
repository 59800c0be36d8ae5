package order

import (
	"fmt"
	"strconv"
	"strings"
)

// FirstNumber is generated when no numeric order number exists yet.
const FirstNumber = "001"

// NextNumber returns the order number that follows the given existing numbers.
//
// Only numbers that parse as integers take part: the result is their maximum plus
// one, zero-padded to at least three digits. Free-form numbers such as "CUSTOM-1"
// are ignored here but still occupy their value in the unique index.
//
// Example:
//
//	order.NextNumber([]string{"001", "002", "007"}) // "008"
//	order.NextNumber(nil)                          // "001"
func NextNumber(existing []string) string {
	maxNumber := 0
	for _, number := range existing {
		n, err := strconv.Atoi(strings.TrimSpace(number))
		if err != nil || n < 0 {
			continue
		}
		if n > maxNumber {
			maxNumber = n
		}
	}
	return fmt.Sprintf("%03d", maxNumber+1)
}
