package format

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
)

// Unit is a semantic date component a directive stands for.
type Unit string

const (
	Year  Unit = "year"
	Month Unit = "month"
	Day   Unit = "day"
)

// DateComposite decomposes a day-level date.
const DateComposite = "date"

// Directive describes how a directive character is parsed. MaxWidth of zero
// means unlimited.
type Directive struct {
	Unit     Unit
	MinWidth int
	MaxWidth int
	Signed   bool
}

func NewRegistry() *Registry {
	return &Registry{
		directives: map[rune]Directive{
			'y': {Unit: Year, MinWidth: 1, Signed: true},
			'm': {Unit: Month, MinWidth: 1, MaxWidth: 2},
			'd': {Unit: Day, MinWidth: 1, MaxWidth: 2},
		},
		defaults: map[Unit]int{
			Year:  1,
			Month: 1,
			Day:   1,
		},
		composites: map[string][]Unit{
			DateComposite: {Year, Month, Day},
		},
	}
}

// Registry maps directive characters to units, units to fallback values and
// composite types to the units they decompose into.
type Registry struct {
	mu         sync.RWMutex
	gen        atomic.Uint64 // bumped by every new directive
	directives map[rune]Directive
	defaults   map[Unit]int
	composites map[string][]Unit
}

var std = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return std
}

func (self *Registry) RegisterDirective(ch rune, d Directive) error {
	self.mu.Lock()
	defer self.mu.Unlock()

	if old, ok := self.directives[ch]; ok {
		if old == d {
			return nil
		}
		return fmt.Errorf("directive %q already stands for %v: %w",
			ch, old.Unit, ErrRegistry)
	}
	self.directives[ch] = d
	self.gen.Add(1)
	return nil
}

func (self *Registry) SetDefault(unit Unit, value int) error {
	self.mu.Lock()
	defer self.mu.Unlock()

	if old, ok := self.defaults[unit]; ok {
		if old == value {
			return nil
		}
		return fmt.Errorf("default of %v already set to %d: %w",
			unit, old, ErrRegistry)
	}
	self.defaults[unit] = value
	return nil
}

func (self *Registry) RegisterComposite(name string, units ...Unit) error {
	self.mu.Lock()
	defer self.mu.Unlock()

	if old, ok := self.composites[name]; ok {
		if slices.Equal(old, units) {
			return nil
		}
		return fmt.Errorf("composite %q already decomposes into %v: %w",
			name, old, ErrRegistry)
	}
	self.composites[name] = slices.Clone(units)
	return nil
}

func (self *Registry) Directive(ch rune) (Directive, bool) {
	self.mu.RLock()
	defer self.mu.RUnlock()
	d, ok := self.directives[ch]
	return d, ok
}

func (self *Registry) DefaultValue(unit Unit) (int, bool) {
	self.mu.RLock()
	defer self.mu.RUnlock()
	v, ok := self.defaults[unit]
	return v, ok
}

func (self *Registry) Composite(name string) ([]Unit, bool) {
	self.mu.RLock()
	defer self.mu.RUnlock()
	units, ok := self.composites[name]
	return slices.Clone(units), ok
}
