package services

import (
	"fmt"
	"math/rand"
	"time"
)

// generateOrderNumber builds a human-facing identifier in the form
// ORD-YYYYMMDD-NNNNN. The date segment is the creation date in UTC; the
// 5-digit sequence mixes the current timestamp with a random perturbation.
// It is collision-resistant, not unique: the order_number unique index is
// the actual guarantee, and the caller retries on conflict.
func generateOrderNumber(now time.Time) string {
	now = now.UTC()
	seq := (now.UnixMilli() + rand.Int63n(100000)) % 100000
	return fmt.Sprintf("ORD-%s-%05d", now.Format("20060102"), seq)
}
