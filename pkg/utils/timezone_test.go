package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatPublishDate(t *testing.T) {
	// 2026-01-15 01:30 UTC 在圣保罗还是 14 号晚上
	utc := time.Date(2026, 1, 15, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, "14/01/2026", FormatPublishDate(utc))
}

func TestNowInBrazilUsesLocation(t *testing.T) {
	now := NowInBrazil()
	assert.Equal(t, BrazilLocation, now.Location())
}
