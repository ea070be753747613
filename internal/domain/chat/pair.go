package chat

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
)

// OrderPair normalizes an unordered user pair into canonical order, the
// smaller UUID (bytewise) first. Every pair-keyed lookup, lock, and write
// goes through this so an unordered pair always maps to the same row.
func OrderPair(a, b uuid.UUID) (low, high uuid.UUID) {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return a, b
	}
	return b, a
}

// PairKey returns a stable string key for an unordered user pair, used for
// pair-scoped locking.
func PairKey(a, b uuid.UUID) string {
	low, high := OrderPair(a, b)
	return fmt.Sprintf("%s:%s", low, high)
}
