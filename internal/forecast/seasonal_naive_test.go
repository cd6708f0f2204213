package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/forecast-server/internal/series"
)

var start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func dailyOf(vals ...float64) series.Daily {
	d := make(series.Daily, len(vals))
	for i, v := range vals {
		d[i] = series.Point{Date: start.AddDate(0, 0, i), Value: v}
	}
	return d
}

func TestSeasonalNaive_RepeatsLastSeason(t *testing.T) {
	train := dailyOf(1, 2, 3, 1, 2, 3)

	model, err := SeasonalNaive{Period: 3}.Fit(train)
	require.NoError(t, err)
	preds, err := model.Forecast(5)
	require.NoError(t, err)

	require.Len(t, preds, 5)
	assert.Equal(t, start.AddDate(0, 0, 6), preds[0].Date)
	assert.Equal(t, start.AddDate(0, 0, 10), preds[4].Date)
	for i, want := range []float64{1, 2, 3, 1, 2} {
		assert.Equal(t, want, preds[i].Mean)
		assert.Equal(t, want, preds[i].Lower, "no seasonal variation, no spread")
		assert.Equal(t, want, preds[i].Upper)
	}
}

func TestSeasonalNaive_IntervalWidensPerSeason(t *testing.T) {
	train := dailyOf(10, 10, 12, 8, 10, 10, 14, 6)

	model, err := SeasonalNaive{Period: 2}.Fit(train)
	require.NoError(t, err)
	preds, err := model.Forecast(4)
	require.NoError(t, err)

	firstWidth := preds[0].Upper - preds[0].Mean
	thirdWidth := preds[2].Upper - preds[2].Mean
	assert.Greater(t, firstWidth, 0.0)
	assert.InDelta(t, firstWidth*1.41421356, thirdWidth, 1e-6)
	for _, p := range preds {
		assert.GreaterOrEqual(t, p.Lower, 0.0)
	}
}

func TestSeasonalNaive_TooShort(t *testing.T) {
	_, err := SeasonalNaive{Period: 14}.Fit(dailyOf(1, 2, 3))
	assert.ErrorIs(t, err, ErrTooShort)
}

func TestSeasonalNaive_InvalidSteps(t *testing.T) {
	model, err := SeasonalNaive{Period: 1}.Fit(dailyOf(1))
	require.NoError(t, err)

	_, err = model.Forecast(0)
	assert.ErrorIs(t, err, ErrInvalidSteps)
}
