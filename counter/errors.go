package counter

import (
	"errors"
	"fmt"

	"github.com/dsh2dsh/periods/format"
)

var (
	ErrRange       = errors.New("value out of range")
	ErrUnsupported = errors.New("unsupported operation")

	// ErrParse is returned by every strict parse function.
	ErrParse = format.ErrParse
)

func newRangeError(field string, value, lo, hi int64) error {
	return errors.Join(
		&RangeError{Field: field, Value: value, Min: lo, Max: hi},
		ErrRange,
	)
}

type RangeError struct {
	Field    string
	Value    int64
	Min, Max int64
}

func (self *RangeError) Error() string {
	return fmt.Sprintf("%s %d out of range [%d, %d]",
		self.Field, self.Value, self.Min, self.Max)
}

func (self *RangeError) Is(target error) bool {
	_, ok := target.(*RangeError)
	return ok
}

func newUnsupportedError(typ, op string) error {
	return errors.Join(&UnsupportedError{Type: typ, Op: op}, ErrUnsupported)
}

// UnsupportedError reports an operation which is not defined for a counter
// type, like the month of a Quarter.
type UnsupportedError struct {
	Type string
	Op   string
}

func (self *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: %s not supported", self.Type, self.Op)
}

func (self *UnsupportedError) Is(target error) bool {
	_, ok := target.(*UnsupportedError)
	return ok
}
