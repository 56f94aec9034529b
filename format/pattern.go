package format

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Compile compiles layout against the default registry.
func Compile(layout string) (*Pattern, error) {
	return std.Compile(layout)
}

func MustCompile(layout string) *Pattern {
	p, err := Compile(layout)
	if err != nil {
		panic(err)
	}
	return p
}

// Compile splits layout into literals and directives known to the registry.
// A run of one directive character sets its width. Backslash escapes the next
// character. Directives registered later are picked up by the pattern on its
// next use.
func (self *Registry) Compile(layout string) (*Pattern, error) {
	gen, tokens, err := self.tokenize(layout)
	if err != nil {
		return nil, err
	}
	p := &Pattern{layout: layout, reg: self}
	p.compiled.Store(&compiled{gen: gen, tokens: tokens})
	return p, nil
}

// tokenize returns tokens of layout and the directives generation they were
// made with.
func (self *Registry) tokenize(layout string) (uint64, []token, error) {
	self.mu.RLock()
	defer self.mu.RUnlock()

	gen := self.gen.Load()
	if layout == "" {
		return gen, nil, fmt.Errorf("empty layout: %w", ErrLayout)
	}

	var tokens []token
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, token{literal: lit.String()})
			lit.Reset()
		}
	}

	runes := []rune(layout)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\\' {
			if i+1 == len(runes) {
				return gen, nil, fmt.Errorf("trailing escape in %q: %w", layout,
					ErrLayout)
			}
			i++
			lit.WriteRune(runes[i])
			continue
		}

		d, ok := self.directives[r]
		if !ok {
			lit.WriteRune(r)
			continue
		}

		j := i
		for j < len(runes) && runes[j] == r {
			j++
		}
		width := j - i
		if d.MaxWidth > 0 && width > d.MaxWidth {
			return gen, nil, fmt.Errorf("%q repeated %d times, max %d in %q: %w",
				r, width, d.MaxWidth, layout, ErrLayout)
		}
		flush()
		tokens = append(tokens, token{ch: r, dir: d, width: width})
		i = j - 1
	}
	flush()
	return gen, tokens, nil
}

type token struct {
	literal string

	ch    rune
	dir   Directive
	width int
}

func (self *token) isDirective() bool {
	return self.ch != 0
}

// scan reads the value of a directive from the head of s. fixed forces
// exactly width digits, for directives followed directly by another one.
func (self *token) scan(s string, fixed bool) (v, n int, err error) {
	neg := false
	if self.dir.Signed && len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		n = 1
	}

	minWidth, maxWidth := self.dir.MinWidth, self.dir.MaxWidth
	if fixed {
		minWidth, maxWidth = self.width, self.width
	}

	start := n
	for n < len(s) && s[n] >= '0' && s[n] <= '9' &&
		(maxWidth == 0 || n-start < maxWidth) {
		n++
	}

	if digits := n - start; digits == 0 || digits < minWidth {
		err = fmt.Errorf("expected %v (%d+ digits) at %q", self.dir.Unit,
			max(minWidth, 1), s)
		return
	}

	v, err = strconv.Atoi(s[start:n])
	if err != nil {
		err = fmt.Errorf("%v: %w", self.dir.Unit, err)
		return
	}
	if neg {
		v = -v
	}
	return
}

func (self *token) appendValue(b *strings.Builder, v int) {
	if v < 0 {
		b.WriteByte('-')
		v = -v
	}
	s := strconv.Itoa(v)
	for i := len(s); i < self.width; i++ {
		b.WriteByte('0')
	}
	b.WriteString(s)
}

// Pattern is a compiled layout. It is safe for concurrent use.
type Pattern struct {
	layout   string
	reg      *Registry
	compiled atomic.Pointer[compiled]
}

type compiled struct {
	gen    uint64
	tokens []token
}

// tokens returns tokens of the layout, recompiled if directives were
// registered since the last time. A layout which no longer compiles keeps its
// previous tokens.
func (self *Pattern) tokens() []token {
	c := self.compiled.Load()
	if c.gen == self.reg.gen.Load() {
		return c.tokens
	}

	gen, tokens, err := self.reg.tokenize(self.layout)
	if err != nil {
		tokens = c.tokens
	}
	self.compiled.Store(&compiled{gen: gen, tokens: tokens})
	return tokens
}

func (self *Pattern) String() string {
	return self.layout
}

// Has reports whether the pattern contains a directive for unit.
func (self *Pattern) Has(unit Unit) bool {
	tokens := self.tokens()
	for i := range tokens {
		if tok := &tokens[i]; tok.isDirective() && tok.dir.Unit == unit {
			return true
		}
	}
	return false
}

// Values holds parsed components by unit.
type Values map[Unit]int

func (self Values) Field(unit Unit) (int, error) {
	if v, ok := self[unit]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("%v: %w", unit, ErrField)
}

// Parse reads text into the units of composite. Units of composite missing
// from the pattern get their registered default.
func (self *Pattern) Parse(text, composite string) (Values, error) {
	units, ok := self.reg.Composite(composite)
	if !ok {
		return nil, fmt.Errorf("unknown composite %q: %w", composite, ErrLayout)
	}

	tokens := self.tokens()
	values := make(Values, len(units))
	rest := text
	for i := range tokens {
		tok := &tokens[i]
		if !tok.isDirective() {
			if !strings.HasPrefix(rest, tok.literal) {
				return nil, NewParseError(text, self.layout,
					fmt.Sprintf("expected %q at %q", tok.literal, rest))
			}
			rest = rest[len(tok.literal):]
			continue
		}

		fixed := i+1 < len(tokens) && tokens[i+1].isDirective()
		v, n, err := tok.scan(rest, fixed)
		if err != nil {
			return nil, NewParseError(text, self.layout, err.Error())
		}
		values[tok.dir.Unit] = v
		rest = rest[n:]
	}

	if rest != "" {
		return nil, NewParseError(text, self.layout,
			fmt.Sprintf("unexpected trailing %q", rest))
	}

	for _, unit := range units {
		if _, ok := values[unit]; ok {
			continue
		}
		v, ok := self.reg.DefaultValue(unit)
		if !ok {
			return nil, NewParseError(text, self.layout,
				fmt.Sprintf("no %v in layout and no default", unit))
		}
		values[unit] = v
	}
	return values, nil
}

// FieldGetter gives the value of a unit, or an error if the unit is not
// defined for the value.
type FieldGetter interface {
	Field(unit Unit) (int, error)
}

func (self *Pattern) Format(v FieldGetter) (string, error) {
	var b strings.Builder
	tokens := self.tokens()
	for i := range tokens {
		tok := &tokens[i]
		if !tok.isDirective() {
			b.WriteString(tok.literal)
			continue
		}
		n, err := v.Field(tok.dir.Unit)
		if err != nil {
			return "", fmt.Errorf("format as %q: %w", self.layout, err)
		}
		tok.appendValue(&b, n)
	}
	return b.String(), nil
}
