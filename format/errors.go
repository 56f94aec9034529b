package format

import (
	"errors"
	"fmt"
)

var (
	ErrParse    = errors.New("cannot parse")
	ErrLayout   = errors.New("invalid layout")
	ErrRegistry = errors.New("conflicting registration")
	ErrField    = errors.New("field not available")
)

// NewParseError returns a *ParseError joined with ErrParse.
func NewParseError(text, layout, reason string) error {
	return errors.Join(
		&ParseError{Text: text, Layout: layout, Reason: reason},
		ErrParse,
	)
}

type ParseError struct {
	Text   string
	Layout string
	Reason string
}

func (self *ParseError) Error() string {
	return fmt.Sprintf("parse %q as %q: %s", self.Text, self.Layout, self.Reason)
}

func (self *ParseError) Is(target error) bool {
	_, ok := target.(*ParseError)
	return ok
}
