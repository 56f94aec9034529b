package counter

import (
	"fmt"
	"strings"
)

// Unit is a step of counter arithmetic.
type Unit int

const (
	Months Unit = iota + 1
	Quarters
	Years
)

func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "month", "months":
		return Months, nil
	case "q", "quarter", "quarters":
		return Quarters, nil
	case "y", "year", "years":
		return Years, nil
	}
	return 0, fmt.Errorf("unknown unit %q: %w", s, ErrUnsupported)
}

func (self Unit) String() string {
	switch self {
	case Months:
		return "months"
	case Quarters:
		return "quarters"
	case Years:
		return "years"
	}
	return fmt.Sprintf("Unit(%d)", int(self))
}

// Set implements pflag.Value.
func (self *Unit) Set(s string) error {
	u, err := ParseUnit(s)
	if err != nil {
		return err
	}
	*self = u
	return nil
}

func (self *Unit) Type() string { return "unit" }

func (self Unit) inMonths() int64 {
	switch self {
	case Months:
		return 1
	case Quarters:
		return 3
	case Years:
		return 12
	}
	return 0
}

func (self Unit) inQuarters() int64 {
	switch self {
	case Quarters:
		return 1
	case Years:
		return 4
	}
	return 0
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}
