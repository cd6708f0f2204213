package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayTotals(t *testing.T) {
	daily := Daily{
		{Date: day("2024-01-01"), Value: 100}, // Monday, excluded by since
		{Date: day("2024-01-08"), Value: 1},   // Monday
		{Date: day("2024-01-09"), Value: 2},   // Tuesday
		{Date: day("2024-01-14"), Value: 7},   // Sunday
		{Date: day("2024-01-15"), Value: 10},  // Monday
	}

	totals := WeekdayTotals(daily, day("2024-01-01"))

	require.Len(t, totals, 7)
	assert.Equal(t, time.Monday, totals[0].Weekday)
	assert.Equal(t, 11.0, totals[0].Total)
	assert.Equal(t, 2.0, totals[1].Total)
	assert.Equal(t, 0.0, totals[2].Total)
	assert.Equal(t, time.Sunday, totals[6].Weekday)
	assert.Equal(t, 7.0, totals[6].Total)
}
