package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kosman/kosman-api/pkg/clock"
)

func TestSystemReturnsUTC(t *testing.T) {
	now := clock.System{}.Now()
	assert.Equal(t, time.UTC, now.Location())
}

func TestFixed(t *testing.T) {
	start := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	clk := clock.NewFixed(start)
	assert.Equal(t, start, clk.Now())

	later := start.Add(24 * time.Hour)
	clk.Set(later)
	assert.Equal(t, later, clk.Now())
}
