package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	at := time.Date(2025, 3, 14, 23, 59, 0, 0, time.FixedZone("UTC+7", 7*3600))

	n := generateOrderNumber(at)

	assert.Regexp(t, `^ORD-\d{8}-\d{5}$`, n)
	// the date segment is the creation date in UTC, not local time
	assert.True(t, strings.HasPrefix(n, "ORD-20250314-"))
}

func TestGenerateOrderNumber_SequenceStaysFiveDigits(t *testing.T) {
	now := time.Now()
	for i := 0; i < 1000; i++ {
		n := generateOrderNumber(now)
		assert.Len(t, n, len("ORD-20060102-00000"))
	}
}
