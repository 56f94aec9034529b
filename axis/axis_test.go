package axis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsh2dsh/periods/counter"
)

func TestMonths(t *testing.T) {
	months, err := counter.MonthRange(counter.MustMonth(2021, time.June),
		counter.MustMonth(2021, time.August), 1, counter.Months)
	require.NoError(t, err)

	r := Months(months)
	require.Len(t, r.Values, 3)
	assert.InDelta(t, float64(months[0].Offset()), r.Values[0], 0)
	assert.InDelta(t, 1, r.Values[1]-r.Values[0], 0)
	assert.Equal(t, "2021-07", r.Label(r.Values[1]))
	assert.Equal(t, "2021-07", r.Label(r.Values[1]+0.3), "rounded")

	assert.Equal(t, []Tick{
		{Value: r.Values[0], Label: "2021-06"},
		{Value: r.Values[1], Label: "2021-07"},
		{Value: r.Values[2], Label: "2021-08"},
	}, r.Ticks())
}

func TestQuarters(t *testing.T) {
	q := counter.MustQuarter(2021, 4)
	r := Quarters([]counter.Quarter{q, q.AddQuarters(1)})
	assert.Equal(t, []float64{float64(q.Offset()), float64(q.Offset() + 1)},
		r.Values)
	assert.Equal(t, "2022-Q1", r.Label(r.Values[1]))
}

func TestNew_empty(t *testing.T) {
	r := Months(nil)
	assert.Empty(t, r.Values)
	assert.Empty(t, r.Ticks())
	assert.Equal(t, "0001-01", r.Label(1))
}
