package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mise/staffing-engine/engine"
)

func TestSameDay_IgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2026, time.June, 10, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, time.June, 10, 23, 30, 0, 0, time.UTC)
	nextDay := time.Date(2026, time.June, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, engine.SameDay(morning, evening))
	assert.False(t, engine.SameDay(evening, nextDay))
}

func TestDay_Roundtrip(t *testing.T) {
	d, err := engine.ParseDay("2026-06-10")
	require.NoError(t, err)
	assert.Equal(t, "2026-06-10", d.String())
	assert.Equal(t, "2026-06-11", d.Next().String())
	assert.True(t, d.Before(d.Next()))
}

func TestParseDay_Invalid(t *testing.T) {
	_, err := engine.ParseDay("June 10th")
	assert.Error(t, err)
}
