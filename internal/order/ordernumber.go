package order

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateOrderNumber returns a human-readable order number derived from the
// current millisecond timestamp plus a 3-digit random suffix, e.g.
// PN-734512087. Uniqueness is probabilistic, not guaranteed: two orders in
// the same millisecond collide with p=1/1000, which is negligible at expected
// volumes, and the unique index on order_number catches the rest.
func GenerateOrderNumber() string {
	millis := fmt.Sprint(time.Now().UnixMilli())

	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		// fallback: time-based entropy
		n = big.NewInt(time.Now().UnixNano() % 1000)
	}

	return fmt.Sprintf("PN-%s%03d", millis[len(millis)-6:], n.Int64())
}
