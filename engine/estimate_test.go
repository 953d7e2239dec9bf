package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mise/staffing-engine/engine"
)

func TestEstimateLaborCost(t *testing.T) {
	// 5 Servers at 22.50/h and 1 Bartender at 28/h for a 6-hour shift.
	positions := []engine.EventPosition{
		engine.NewEventPosition("Server", 5),
		engine.NewEventPosition("Bartender", 1),
	}
	rates := engine.RateCard{
		"Server":    decimal.RequireFromString("22.50"),
		"Bartender": decimal.RequireFromString("28"),
	}

	est := engine.EstimateLaborCost(positions, rates, decimal.NewFromInt(6))

	require.Len(t, est.Lines, 2)
	assert.Equal(t, "675", est.Lines[0].Cost.String())
	assert.Equal(t, "168", est.Lines[1].Cost.String())
	assert.Equal(t, "843", est.Total.String())
}

func TestEstimateLaborCost_UnratedPositionIsVisibleAtZero(t *testing.T) {
	positions := []engine.EventPosition{engine.NewEventPosition("Sommelier", 2)}

	est := engine.EstimateLaborCost(positions, engine.RateCard{}, decimal.NewFromInt(4))

	require.Len(t, est.Lines, 1)
	assert.True(t, est.Lines[0].Cost.IsZero())
	assert.True(t, est.Total.IsZero())
}
