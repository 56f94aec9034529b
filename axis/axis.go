// Package axis turns counters into plot-axis recipes: a numeric value per
// point and a formatter for tick labels.
package axis

import (
	"math"

	"github.com/dsh2dsh/periods/counter"
)

// Value is a point that is not natively numeric.
type Value interface {
	Offset() int64
	String() string
}

type Recipe struct {
	Values []float64
	Label  func(v float64) string
}

type Tick struct {
	Value float64
	Label string
}

// New returns a recipe that plots values by their offsets. fromOffset
// restores a value from an offset for labelling.
func New[T Value](values []T, fromOffset func(int64) T) Recipe {
	r := Recipe{
		Values: make([]float64, len(values)),
		Label: func(v float64) string {
			return fromOffset(int64(math.Round(v))).String()
		},
	}
	for i, v := range values {
		r.Values[i] = float64(v.Offset())
	}
	return r
}

func Months(months []counter.Month) Recipe {
	return New(months, counter.MonthOffset)
}

func Quarters(quarters []counter.Quarter) Recipe {
	return New(quarters, counter.QuarterOffset)
}

func (self Recipe) Ticks() []Tick {
	ticks := make([]Tick, len(self.Values))
	for i, v := range self.Values {
		ticks[i] = Tick{Value: v, Label: self.Label(v)}
	}
	return ticks
}
