package counter

import (
	"cmp"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rickb777/date/v2"
	"github.com/rickb777/period"

	"github.com/dsh2dsh/periods/format"
)

const monthType = "counter.Month"

// Month is a month of the proleptic Gregorian calendar, kept as the number of
// months since the epoch: offset 1 is January of year 1.
type Month struct {
	offset int64
}

func NewMonth(year int, month time.Month) (Month, error) {
	if month < time.January || month > time.December {
		return Month{}, newRangeError("month", int64(month), 1, 12)
	}
	return Month{offset: monthOffset(year, month)}, nil
}

func MustMonth(year int, month time.Month) Month {
	m, err := NewMonth(year, month)
	if err != nil {
		panic(err)
	}
	return m
}

func monthOffset(year int, month time.Month) int64 {
	return 12*(int64(year)-1) + int64(month)
}

// MonthOffset returns the Month with the given raw offset.
func MonthOffset(offset int64) Month {
	return Month{offset: offset}
}

// MonthOf returns the month of d, the day is dropped.
func MonthOf(d date.Date) Month {
	return Month{offset: monthOffset(d.Year(), d.Month())}
}

func MonthFromTime(t time.Time) Month {
	y, m, _ := t.Date()
	return Month{offset: monthOffset(y, m)}
}

func (self Month) Offset() int64 { return self.offset }

func (self Month) Year() int {
	return int(1 + floorDiv(self.offset-1, 12))
}

func (self Month) Month() time.Month {
	return time.Month(1 + floorMod(self.offset-1, 12))
}

func (self Month) QuarterOfYear() int {
	return (int(self.Month())-1)/3 + 1
}

// Field implements [format.FieldGetter].
func (self Month) Field(unit format.Unit) (int, error) {
	switch unit {
	case format.Year:
		return self.Year(), nil
	case format.Month:
		return int(self.Month()), nil
	case UnitQuarter:
		return self.QuarterOfYear(), nil
	}
	return 0, newUnsupportedError(monthType, string(unit))
}

func (self Month) TruncateToYear() Month {
	return Month{offset: self.offset - floorMod(self.offset-1, 12)}
}

func (self Month) TruncateToQuarter() Month {
	return Month{offset: self.offset - floorMod(self.offset-1, 3)}
}

func (self Month) TruncateToMonth() Month {
	return self
}

// Add moves the month by n units. Quarters and years are converted to 3 and
// 12 months. Offset overflow is not checked.
func (self Month) Add(n int64, unit Unit) (Month, error) {
	k := unit.inMonths()
	if k == 0 {
		return self, newUnsupportedError(monthType, "add "+unit.String())
	}
	return Month{offset: self.offset + n*k}, nil
}

func (self Month) Sub(n int64, unit Unit) (Month, error) {
	return self.Add(-n, unit)
}

func (self Month) AddMonths(n int64) Month {
	return Month{offset: self.offset + n}
}

func (self Month) AddQuarters(n int64) Month {
	return Month{offset: self.offset + 3*n}
}

func (self Month) AddYears(n int64) Month {
	return Month{offset: self.offset + 12*n}
}

// AddPeriod adds an ISO-8601 period made of whole years and months only.
func (self Month) AddPeriod(p period.Period) (Month, error) {
	months, ok := periodMonths(p)
	if !ok {
		return self, newUnsupportedError(monthType, "add "+p.String())
	}
	return self.AddMonths(months), nil
}

func periodMonths(p period.Period) (int64, bool) {
	y, m := p.Years(), p.Months()
	if period.NewYMD(y, m, 0).String() != p.String() {
		return 0, false
	}
	return 12*int64(y) + int64(m), true
}

// MonthSteps returns the number of whole units from a to b, rounded down.
func MonthSteps(a, b Month, unit Unit) (int64, error) {
	k := unit.inMonths()
	if k == 0 {
		return 0, newUnsupportedError(monthType, "step "+unit.String())
	}
	return floorDiv(b.offset-a.offset, k), nil
}

// MonthRange returns months from a through b, stepping by n units.
func MonthRange(a, b Month, n int64, unit Unit) ([]Month, error) {
	k := unit.inMonths()
	if k == 0 {
		return nil, newUnsupportedError(monthType, "step "+unit.String())
	} else if n < 1 {
		return nil, newRangeError("step", n, 1, math.MaxInt64)
	} else if b.Before(a) {
		return nil, nil
	}

	k *= n
	months := make([]Month, 0, floorDiv(b.offset-a.offset, k)+1)
	for m := a; !m.After(b); m = m.AddMonths(k) {
		months = append(months, m)
	}
	return months, nil
}

func (self Month) Compare(other Month) int {
	return cmp.Compare(self.offset, other.offset)
}

func (self Month) Before(other Month) bool { return self.offset < other.offset }

func (self Month) After(other Month) bool { return self.offset > other.offset }

// CompareDate compares the first day of the month with d.
func (self Month) CompareDate(d date.Date) int {
	return cmp.Compare(self.Date(), d)
}

// Date returns the first day of the month.
func (self Month) Date() date.Date {
	return date.New(self.Year(), self.Month(), 1)
}

// Time returns midnight UTC of the first day of the month.
func (self Month) Time() time.Time {
	return time.Date(self.Year(), self.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// String returns the month as YYYY-MM.
func (self Month) String() string {
	Init()
	s, err := monthPattern.Format(self)
	if err != nil {
		panic(err)
	}
	return s
}

func (self Month) GoString() string {
	return fmt.Sprintf("%s(%q)", monthType, self.String())
}

func (self Month) FormatLayout(layout string) (string, error) {
	p, err := compile(layout)
	if err != nil {
		return "", err
	}
	return p.Format(self) //nolint:wrapcheck // it's our package
}

func ParseMonth(text string) (Month, error) {
	Init()
	return ParseMonthPattern(monthPattern, text)
}

func ParseMonthLayout(layout, text string) (Month, error) {
	p, err := compile(layout)
	if err != nil {
		return Month{}, err
	}
	return ParseMonthPattern(p, text)
}

// ParseMonthPattern parses text with p. A day, if p has it, must exist in the
// month and is dropped.
func ParseMonthPattern(p *format.Pattern, text string) (Month, error) {
	Init()
	v, err := p.Parse(text, MonthComposite)
	if err != nil {
		return Month{}, fmt.Errorf("parse month: %w", err)
	}

	m, err := NewMonth(v[format.Year], time.Month(v[format.Month]))
	if err != nil {
		return Month{}, fmt.Errorf("parse month %q: %w", text, err)
	}

	if d, ok := v[format.Day]; ok {
		if _, err := checkDay(p, text, m.Year(), m.Month(), d); err != nil {
			return Month{}, fmt.Errorf("parse month: %w", err)
		}
	}
	return m, nil
}

// TryParseMonth is like ParseMonthLayout, but reports failure with false. It
// uses MonthLayout if no layout given.
func TryParseMonth(text string, layout ...string) (Month, bool) {
	var m Month
	var err error
	if len(layout) > 0 {
		m, err = ParseMonthLayout(layout[0], text)
	} else {
		m, err = ParseMonth(text)
	}
	return m, err == nil
}

func (self Month) MarshalText() ([]byte, error) {
	return []byte(self.String()), nil
}

func (self *Month) UnmarshalText(b []byte) error {
	m, err := ParseMonth(string(b))
	if err != nil {
		return err
	}
	*self = m
	return nil
}

// ScanDate implements [pgtype.DateScanner].
func (self *Month) ScanDate(v pgtype.Date) error {
	if err := checkScanDate(monthType, v); err != nil {
		return err
	}
	*self = MonthFromTime(v.Time)
	return nil
}

// DateValue implements [pgtype.DateValuer].
func (self Month) DateValue() (pgtype.Date, error) {
	return pgtype.Date{Time: self.Time(), Valid: true}, nil
}
