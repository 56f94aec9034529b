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

const quarterType = "counter.Quarter"

// Quarter is a quarter of a year of the proleptic Gregorian calendar, kept as
// the number of quarters since the epoch: offset 1 is Q1 of year 1.
//
// A quarter does not determine a month, so there is no Month accessor and
// Field(format.Month) fails with ErrUnsupported.
type Quarter struct {
	offset int64
}

func NewQuarter(year, quarter int) (Quarter, error) {
	if quarter < 1 || quarter > 4 {
		return Quarter{}, newRangeError("quarter", int64(quarter), 1, 4)
	}
	return Quarter{offset: quarterOffset(year, quarter)}, nil
}

func MustQuarter(year, quarter int) Quarter {
	q, err := NewQuarter(year, quarter)
	if err != nil {
		panic(err)
	}
	return q
}

func quarterOffset(year, quarter int) int64 {
	return 4*(int64(year)-1) + int64(quarter)
}

func monthQuarter(month time.Month) int {
	return (int(month)-1)/3 + 1
}

// QuarterOffset returns the Quarter with the given raw offset.
func QuarterOffset(offset int64) Quarter {
	return Quarter{offset: offset}
}

// QuarterOf returns the quarter d belongs to.
func QuarterOf(d date.Date) Quarter {
	return Quarter{offset: quarterOffset(d.Year(), monthQuarter(d.Month()))}
}

func QuarterFromTime(t time.Time) Quarter {
	y, m, _ := t.Date()
	return Quarter{offset: quarterOffset(y, monthQuarter(m))}
}

func (self Quarter) Offset() int64 { return self.offset }

func (self Quarter) Year() int {
	return int(1 + floorDiv(self.offset-1, 4))
}

func (self Quarter) QuarterOfYear() int {
	return int(1 + floorMod(self.offset-1, 4))
}

// Field implements [format.FieldGetter].
func (self Quarter) Field(unit format.Unit) (int, error) {
	switch unit {
	case format.Year:
		return self.Year(), nil
	case UnitQuarter:
		return self.QuarterOfYear(), nil
	}
	return 0, newUnsupportedError(quarterType, string(unit))
}

func (self Quarter) TruncateToYear() Quarter {
	return Quarter{offset: self.offset - floorMod(self.offset-1, 4)}
}

func (self Quarter) TruncateToQuarter() Quarter {
	return self
}

// Add moves the quarter by n units. Years are converted to 4 quarters, months
// are not supported.
func (self Quarter) Add(n int64, unit Unit) (Quarter, error) {
	k := unit.inQuarters()
	if k == 0 {
		return self, newUnsupportedError(quarterType, "add "+unit.String())
	}
	return Quarter{offset: self.offset + n*k}, nil
}

func (self Quarter) Sub(n int64, unit Unit) (Quarter, error) {
	return self.Add(-n, unit)
}

func (self Quarter) AddQuarters(n int64) Quarter {
	return Quarter{offset: self.offset + n}
}

func (self Quarter) AddYears(n int64) Quarter {
	return Quarter{offset: self.offset + 4*n}
}

// AddPeriod adds an ISO-8601 period made of whole years and months, where
// months must be a multiple of 3.
func (self Quarter) AddPeriod(p period.Period) (Quarter, error) {
	months, ok := periodMonths(p)
	if !ok || months%3 != 0 {
		return self, newUnsupportedError(quarterType, "add "+p.String())
	}
	return self.AddQuarters(months / 3), nil
}

func QuarterSteps(a, b Quarter, unit Unit) (int64, error) {
	k := unit.inQuarters()
	if k == 0 {
		return 0, newUnsupportedError(quarterType, "step "+unit.String())
	}
	return floorDiv(b.offset-a.offset, k), nil
}

func QuarterRange(a, b Quarter, n int64, unit Unit) ([]Quarter, error) {
	k := unit.inQuarters()
	if k == 0 {
		return nil, newUnsupportedError(quarterType, "step "+unit.String())
	} else if n < 1 {
		return nil, newRangeError("step", n, 1, math.MaxInt64)
	} else if b.Before(a) {
		return nil, nil
	}

	k *= n
	quarters := make([]Quarter, 0, floorDiv(b.offset-a.offset, k)+1)
	for q := a; !q.After(b); q = q.AddQuarters(k) {
		quarters = append(quarters, q)
	}
	return quarters, nil
}

func (self Quarter) Compare(other Quarter) int {
	return cmp.Compare(self.offset, other.offset)
}

func (self Quarter) Before(other Quarter) bool { return self.offset < other.offset }

func (self Quarter) After(other Quarter) bool { return self.offset > other.offset }

// CompareDate compares the first day of the quarter with d.
func (self Quarter) CompareDate(d date.Date) int {
	return cmp.Compare(self.Date(), d)
}

// Date returns the first day of the quarter.
func (self Quarter) Date() date.Date {
	return QuarterToMonth(self).Date()
}

func (self Quarter) Time() time.Time {
	return QuarterToMonth(self).Time()
}

// String returns the quarter as YYYY-Qq.
func (self Quarter) String() string {
	Init()
	s, err := quarterPattern.Format(self)
	if err != nil {
		panic(err)
	}
	return s
}

func (self Quarter) GoString() string {
	return fmt.Sprintf("%s(%q)", quarterType, self.String())
}

// FormatLayout formats the quarter. Layouts with month or day directives fail
// with ErrUnsupported.
func (self Quarter) FormatLayout(layout string) (string, error) {
	p, err := compile(layout)
	if err != nil {
		return "", err
	}
	return p.Format(self) //nolint:wrapcheck // it's our package
}

func ParseQuarter(text string) (Quarter, error) {
	Init()
	return ParseQuarterPattern(quarterPattern, text)
}

func ParseQuarterLayout(layout, text string) (Quarter, error) {
	p, err := compile(layout)
	if err != nil {
		return Quarter{}, err
	}
	return ParseQuarterPattern(p, text)
}

// ParseQuarterPattern parses text with p if it has the quarter directive.
// Otherwise text is parsed as a day-level date and converted.
func ParseQuarterPattern(p *format.Pattern, text string) (Quarter, error) {
	Init()
	if !p.Has(UnitQuarter) {
		d, err := parseDate(p, text)
		if err != nil {
			return Quarter{}, fmt.Errorf("parse quarter: %w", err)
		}
		return QuarterOf(d), nil
	}

	v, err := p.Parse(text, QuarterComposite)
	if err != nil {
		return Quarter{}, fmt.Errorf("parse quarter: %w", err)
	}

	q, err := NewQuarter(v[format.Year], v[UnitQuarter])
	if err != nil {
		return Quarter{}, fmt.Errorf("parse quarter %q: %w", text, err)
	}
	return q, nil
}

// TryParseQuarter is like ParseQuarterLayout, but reports failure with false.
// It uses QuarterLayout if no layout given.
func TryParseQuarter(text string, layout ...string) (Quarter, bool) {
	var q Quarter
	var err error
	if len(layout) > 0 {
		q, err = ParseQuarterLayout(layout[0], text)
	} else {
		q, err = ParseQuarter(text)
	}
	return q, err == nil
}

func (self Quarter) MarshalText() ([]byte, error) {
	return []byte(self.String()), nil
}

func (self *Quarter) UnmarshalText(b []byte) error {
	q, err := ParseQuarter(string(b))
	if err != nil {
		return err
	}
	*self = q
	return nil
}

// ScanDate implements [pgtype.DateScanner].
func (self *Quarter) ScanDate(v pgtype.Date) error {
	if err := checkScanDate(quarterType, v); err != nil {
		return err
	}
	*self = QuarterFromTime(v.Time)
	return nil
}

// DateValue implements [pgtype.DateValuer].
func (self Quarter) DateValue() (pgtype.Date, error) {
	return pgtype.Date{Time: self.Time(), Valid: true}, nil
}
