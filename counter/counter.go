// Package counter implements month and quarter resolution dates of the
// proleptic Gregorian calendar. Both are single integer offsets from the
// epoch, year 1 month 1 (or quarter 1), which is offset 1.
package counter

import (
	"github.com/rickb777/date/v2"

	"github.com/dsh2dsh/periods/format"
)

// Counter is what Month and Quarter have in common.
type Counter[T any] interface {
	format.FieldGetter

	Offset() int64
	Year() int
	QuarterOfYear() int

	TruncateToYear() T
	TruncateToQuarter() T

	Add(n int64, unit Unit) (T, error)
	Sub(n int64, unit Unit) (T, error)

	Compare(other T) int
	CompareDate(d date.Date) int
	Date() date.Date

	String() string
	FormatLayout(layout string) (string, error)
}

var (
	_ Counter[Month]   = Month{}
	_ Counter[Quarter] = Quarter{}
)

// Parser parses text into a counter using layout.
type Parser[T Counter[T]] func(layout, text string) (T, error)

var (
	_ Parser[Month]   = ParseMonthLayout
	_ Parser[Quarter] = ParseQuarterLayout
)
