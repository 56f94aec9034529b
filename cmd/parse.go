package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dsh2dsh/periods/cmd/internal/common"
	"github.com/dsh2dsh/periods/counter"
)

var (
	layoutFlag string

	monthCmd = cobra.Command{
		Use:   "month text...",
		Short: "Parse months and print them as YYYY-MM",
		Example: `
  - Print months of dates:

    $ periods month --layout dd.mm.yyyy 17.08.2021 01.01.1999`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			layouts, err := layoutsWithFlags()
			cobra.CheckErr(err)
			cobra.CheckErr(printParsed(cmd.OutOrStdout(), counter.ParseMonthLayout,
				layouts.Month, args))
		},
	}

	quarterCmd = cobra.Command{
		Use:   "quarter text...",
		Short: "Parse quarters and print them as YYYY-Qq",
		Long: `Parse quarters and print them as YYYY-Qq.

Layouts without the q directive parse text as a date and print the quarter of
that date.`,
		Example: `
  - Print quarters of EDGAR full-index paths:

    $ periods quarter --layout 'yyyy/\Q\T\Rq' 2023/QTR4

  - Print quarters of dates:

    $ periods quarter --layout yyyy-mm-dd 2021-08-17`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			layouts, err := layoutsWithFlags()
			cobra.CheckErr(err)
			cobra.CheckErr(printParsed(cmd.OutOrStdout(),
				counter.ParseQuarterLayout, layouts.Quarter, args))
		},
	}
)

func init() {
	for _, cmd := range [...]*cobra.Command{&monthCmd, &quarterCmd} {
		cmd.Flags().StringVarP(&layoutFlag, "layout", "l", "",
			"parse with this layout instead of PERIODS_*_LAYOUT")
	}
}

// layoutsWithFlags returns layouts from envs, overridden by --layout.
func layoutsWithFlags() (common.Layouts, error) {
	layouts, err := common.NewLayouts()
	if err != nil {
		return layouts, err //nolint:wrapcheck // we'll pass it to cobra.CheckErr()
	}
	if layoutFlag != "" {
		layouts.Month, layouts.Quarter = layoutFlag, layoutFlag
	}
	return layouts, nil
}

func printParsed[T counter.Counter[T]](w io.Writer, parse counter.Parser[T],
	layout string, texts []string,
) error {
	for _, s := range texts {
		v, err := parse(layout, s)
		if err != nil {
			return err
		}
		slog.Debug("parsed", slog.String("text", s), slog.String("layout", layout),
			slog.Int64("offset", v.Offset()))
		if _, err := fmt.Fprintln(w, v.String()); err != nil {
			return fmt.Errorf("print %v: %w", v, err)
		}
	}
	return nil
}
