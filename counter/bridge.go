package counter

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rickb777/date/v2"

	"github.com/dsh2dsh/periods/format"
)

// MonthToQuarter returns the quarter m belongs to. The month within the
// quarter is lost.
func MonthToQuarter(m Month) Quarter {
	return Quarter{offset: floorDiv(m.offset-1, 3) + 1}
}

// QuarterToMonth returns the first month of q.
func QuarterToMonth(q Quarter) Month {
	return Month{offset: (q.offset-1)*3 + 1}
}

// parseDate parses text as a day-level date and rejects days which don't
// exist, like 2021-02-30.
func parseDate(p *format.Pattern, text string) (date.Date, error) {
	v, err := p.Parse(text, format.DateComposite)
	if err != nil {
		return date.Zero, err //nolint:wrapcheck // it's our package
	}

	return checkDay(p, text, v[format.Year], time.Month(v[format.Month]),
		v[format.Day])
}

func checkDay(p *format.Pattern, text string, y int, m time.Month, d int,
) (date.Date, error) {
	day := date.New(y, m, d)
	if day.Year() != y || day.Month() != m || day.Day() != d {
		return date.Zero, format.NewParseError(text, p.String(),
			fmt.Sprintf("no such day %d-%d-%d", y, m, d))
	}
	return day, nil
}

var errScanNull = errors.New("cannot scan NULL")

func checkScanDate(typ string, v pgtype.Date) error {
	if !v.Valid {
		return fmt.Errorf("%s: %w", typ, errScanNull)
	} else if v.InfinityModifier != pgtype.Finite {
		return newUnsupportedError(typ, "scan "+v.InfinityModifier.String())
	}
	return nil
}
