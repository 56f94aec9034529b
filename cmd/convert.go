package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dsh2dsh/periods/cmd/internal/common"
	"github.com/dsh2dsh/periods/counter"
)

var (
	convertTo string

	convertCmd = cobra.Command{
		Use:   "convert text",
		Short: "Convert a month or a quarter into another granularity",
		Long: `Convert a month or a quarter into another granularity.

Text is a quarter if it parses with PERIODS_QUARTER_LAYOUT, otherwise it's a
month. A month converts to its quarter, a quarter converts to its first month,
both convert to the date of their first day.`,
		Example: `
  $ periods convert --to quarter 2021-08
  2021-Q3
  $ periods convert --to month 2021-Q3
  2021-07
  $ periods convert --to date 2021-Q3
  2021-07-01`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			layouts, err := common.NewLayouts()
			cobra.CheckErr(err)
			s, err := convert(layouts, args[0], convertTo)
			cobra.CheckErr(err)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
			cobra.CheckErr(err)
		},
	}
)

func init() {
	convertCmd.Flags().StringVarP(&convertTo, "to", "t", "quarter",
		"convert into: month, quarter or date")
}

// parsedText is a month or a quarter parsed from text.
type parsedText struct {
	month   counter.Month
	quarter counter.Quarter
	isQtr   bool
}

func parseText(layouts common.Layouts, text string) (parsedText, error) {
	if q, ok := counter.TryParseQuarter(text, layouts.Quarter); ok {
		return parsedText{quarter: q, isQtr: true}, nil
	}

	m, err := counter.ParseMonthLayout(layouts.Month, text)
	if err != nil {
		return parsedText{}, fmt.Errorf("neither month nor quarter: %w", err)
	}
	return parsedText{month: m}, nil
}

func convert(layouts common.Layouts, text, to string) (string, error) {
	v, err := parseText(layouts, text)
	if err != nil {
		return "", err
	}

	m, q := v.month, counter.MonthToQuarter(v.month)
	if v.isQtr {
		m, q = counter.QuarterToMonth(v.quarter), v.quarter
	}

	switch to {
	case "month":
		return m.FormatLayout(layouts.Month) //nolint:wrapcheck // we'll pass it to cobra.CheckErr()
	case "quarter":
		return q.FormatLayout(layouts.Quarter) //nolint:wrapcheck // we'll pass it to cobra.CheckErr()
	case "date":
		return m.Date().String(), nil
	}
	return "", fmt.Errorf("unknown conversion %q: %w", to, counter.ErrUnsupported)
}
