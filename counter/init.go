package counter

import (
	"fmt"
	"sync"

	"github.com/dsh2dsh/periods/format"
)

// UnitQuarter is the quarter of year, 1..4.
const UnitQuarter format.Unit = "quarter"

const (
	MonthComposite   = "month"
	QuarterComposite = "quarter"

	MonthLayout   = "yyyy-mm"
	QuarterLayout = "yyyy-Qq"
)

// QuarterDirective is the layout character for UnitQuarter.
const QuarterDirective = 'q'

var (
	initOnce       sync.Once
	monthPattern   *format.Pattern
	quarterPattern *format.Pattern
)

// Init registers the quarter directive and the counter composites into
// [format.Default] and compiles the default layouts. It runs once per process,
// later calls return immediately. Every parse and format function of this
// package calls it, applications may call it at startup.
func Init() {
	initOnce.Do(func() {
		if err := Register(format.Default()); err != nil {
			panic(err)
		}
		monthPattern = format.MustCompile(MonthLayout)
		quarterPattern = format.MustCompile(QuarterLayout)
	})
}

// Register adds the quarter directive, its default and the counter composites
// to r. It's a no-op for a registry which already has them.
func Register(r *format.Registry) error {
	err := r.RegisterDirective(QuarterDirective, format.Directive{
		Unit: UnitQuarter, MinWidth: 1, MaxWidth: 1,
	})
	if err != nil {
		return fmt.Errorf("register quarter directive: %w", err)
	}

	if err := r.SetDefault(UnitQuarter, 1); err != nil {
		return fmt.Errorf("register quarter default: %w", err)
	}

	err = r.RegisterComposite(MonthComposite, format.Year, format.Month)
	if err != nil {
		return fmt.Errorf("register month composite: %w", err)
	}

	err = r.RegisterComposite(QuarterComposite, format.Year, UnitQuarter)
	if err != nil {
		return fmt.Errorf("register quarter composite: %w", err)
	}
	return nil
}

func compile(layout string) (*format.Pattern, error) {
	Init()
	p, err := format.Compile(layout)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", layout, err)
	}
	return p, nil
}
