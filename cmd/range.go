package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rickb777/period"
	"github.com/spf13/cobra"

	"github.com/dsh2dsh/periods/cmd/internal/common"
	"github.com/dsh2dsh/periods/counter"
)

var (
	rangeStep string
	stepsUnit = counter.Months

	rangeCmd = cobra.Command{
		Use:   "range from to",
		Short: "Print months or quarters from one through another",
		Long: `Print months or quarters from one through another.

Step is a number with unit suffix: 3m, 1q, 2y, or an ISO-8601 period of years
and months: P3M, P1Y. Months step quarters if they are a multiple of 3.`,
		Example: `
  $ periods range 2023-Q1 2024-Q1
  $ periods range --step 1q 2020-11 2021-05`,
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			layouts, err := common.NewLayouts()
			cobra.CheckErr(err)
			cobra.CheckErr(printRange(cmd.OutOrStdout(), layouts, args[0], args[1],
				rangeStep))
		},
	}

	stepsCmd = cobra.Command{
		Use:     "steps from to",
		Short:   "Print number of whole steps from one month or quarter to another",
		Example: `  $ periods steps --unit quarter 2020-01 2021-01`,
		Args:    cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			layouts, err := common.NewLayouts()
			cobra.CheckErr(err)
			n, err := countSteps(layouts, args[0], args[1], stepsUnit)
			cobra.CheckErr(err)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), n)
			cobra.CheckErr(err)
		},
	}
)

func init() {
	rangeCmd.Flags().StringVarP(&rangeStep, "step", "s", "1",
		"step between printed values, unit defaults to the kind of from")
	stepsCmd.Flags().VarP(&stepsUnit, "unit", "u",
		"count steps of: month, quarter or year")
}

// parseStep parses "3m", "1q", "2y", "q" or an ISO-8601 period like "P3M".
// Unit is zero for a bare number.
func parseStep(s string) (int64, counter.Unit, error) {
	if strings.HasPrefix(s, "P") || strings.HasPrefix(s, "-P") {
		return parseISOStep(s)
	}

	digits := strings.TrimRightFunc(s, func(r rune) bool {
		return r < '0' || r > '9'
	})

	n := int64(1)
	if digits != "" {
		v, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("step %q: %w", s, err)
		}
		n = v
	}

	if suffix := s[len(digits):]; suffix != "" {
		unit, err := counter.ParseUnit(suffix)
		if err != nil {
			return 0, 0, fmt.Errorf("step %q: %w", s, err)
		} else if unit == counter.Months {
			n, unit = monthsStep(n)
		}
		return n, unit, nil
	} else if digits == "" {
		return 0, 0, fmt.Errorf("empty step: %w", counter.ErrRange)
	}
	return n, 0, nil
}

func parseISOStep(s string) (int64, counter.Unit, error) {
	p, err := period.Parse(s)
	if err != nil {
		return 0, 0, fmt.Errorf("step %q: %w", s, err)
	}

	months := 12*int64(p.Years()) + int64(p.Months())
	if period.NewYMD(p.Years(), p.Months(), 0).String() != p.String() {
		return 0, 0, fmt.Errorf("step %q isn't whole months: %w", s,
			counter.ErrUnsupported)
	}
	n, unit := monthsStep(months)
	return n, unit, nil
}

// monthsStep expresses a step of months in the largest unit dividing it, so
// quarters can step by 3m.
func monthsStep(months int64) (int64, counter.Unit) {
	switch {
	case months%12 == 0:
		return months / 12, counter.Years
	case months%3 == 0:
		return months / 3, counter.Quarters
	}
	return months, counter.Months
}

func printRange(w io.Writer, layouts common.Layouts, from, to, step string,
) error {
	n, unit, err := parseStep(step)
	if err != nil {
		return err
	}

	a, err := parseText(layouts, from)
	if err != nil {
		return err
	}

	if a.isQtr {
		if unit == 0 {
			unit = counter.Quarters
		}
		b, err := counter.ParseQuarterLayout(layouts.Quarter, to)
		if err != nil {
			return err //nolint:wrapcheck // we'll pass it to cobra.CheckErr()
		}
		quarters, err := counter.QuarterRange(a.quarter, b, n, unit)
		if err != nil {
			return err //nolint:wrapcheck // we'll pass it to cobra.CheckErr()
		}
		return printAll(w, quarters, layouts.Quarter)
	}

	if unit == 0 {
		unit = counter.Months
	}
	b, err := counter.ParseMonthLayout(layouts.Month, to)
	if err != nil {
		return err //nolint:wrapcheck // we'll pass it to cobra.CheckErr()
	}
	months, err := counter.MonthRange(a.month, b, n, unit)
	if err != nil {
		return err //nolint:wrapcheck // we'll pass it to cobra.CheckErr()
	}
	return printAll(w, months, layouts.Month)
}

func printAll[T counter.Counter[T]](w io.Writer, values []T, layout string,
) error {
	for _, v := range values {
		s, err := v.FormatLayout(layout)
		if err != nil {
			return err //nolint:wrapcheck // we'll pass it to cobra.CheckErr()
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return fmt.Errorf("print %v: %w", v, err)
		}
	}
	return nil
}

func countSteps(layouts common.Layouts, from, to string, unit counter.Unit,
) (int64, error) {
	a, err := parseText(layouts, from)
	if err != nil {
		return 0, err
	}

	if a.isQtr {
		b, err := counter.ParseQuarterLayout(layouts.Quarter, to)
		if err != nil {
			return 0, err //nolint:wrapcheck // we'll pass it to cobra.CheckErr()
		}
		return counter.QuarterSteps(a.quarter, b, unit) //nolint:wrapcheck // we'll pass it to cobra.CheckErr()
	}

	b, err := counter.ParseMonthLayout(layouts.Month, to)
	if err != nil {
		return 0, err //nolint:wrapcheck // we'll pass it to cobra.CheckErr()
	}
	return counter.MonthSteps(a.month, b, unit) //nolint:wrapcheck // we'll pass it to cobra.CheckErr()
}
