package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dsh2dsh/periods/counter"
)

func New(db Postgreser) *Repo {
	return &Repo{db: db}
}

type Repo struct {
	db Postgreser
}

type Postgreser interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Source is a DATE or TIMESTAMP column of a table. Table may be qualified
// with a schema: "public.fact_units".
type Source struct {
	Table  string
	Column string
}

func (self Source) String() string {
	return self.Table + "." + self.Column
}

func (self Source) table() string {
	return pgx.Identifier(strings.Split(self.Table, ".")).Sanitize()
}

func (self Source) column() string {
	return pgx.Identifier{self.Column}.Sanitize()
}

func (self Source) bucketsSQL(trunc string) string {
	col := self.column()
	return fmt.Sprintf(`
SELECT date_trunc('%s', %s)::date AS bucket, COUNT(*) AS cnt
  FROM %s
  WHERE %s >= $1::date AND %s < $2::date
  GROUP BY 1 ORDER BY 1`, trunc, col, self.table(), col, col)
}

func (self Source) spanSQL() string {
	col := self.column()
	return fmt.Sprintf(`
SELECT MIN(%s)::date AS first, MAX(%s)::date AS last FROM %s`,
		col, col, self.table())
}

// Bucket is the number of rows which belong to Period.
type Bucket[T any] struct {
	Period T     `db:"bucket"`
	Count  int64 `db:"cnt"`
}

// MonthBuckets counts rows of src by month, from the first day of from
// through the last day of to. Months without rows are absent.
func (self *Repo) MonthBuckets(ctx context.Context, src Source,
	from, to counter.Month,
) ([]Bucket[counter.Month], error) {
	buckets, err := collectBuckets[counter.Month](ctx, self.db,
		src.bucketsSQL("month"), from, to.AddMonths(1))
	if err != nil {
		return nil, fmt.Errorf("repo.MonthBuckets of %v: %w", src, err)
	}
	return buckets, nil
}

func (self *Repo) QuarterBuckets(ctx context.Context, src Source,
	from, to counter.Quarter,
) ([]Bucket[counter.Quarter], error) {
	buckets, err := collectBuckets[counter.Quarter](ctx, self.db,
		src.bucketsSQL("quarter"), from, to.AddQuarters(1))
	if err != nil {
		return nil, fmt.Errorf("repo.QuarterBuckets of %v: %w", src, err)
	}
	return buckets, nil
}

func collectBuckets[T any](ctx context.Context, db Postgreser, sql string,
	args ...any,
) ([]Bucket[T], error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err //nolint:wrapcheck // wrap it above
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Bucket[T]]) //nolint:wrapcheck // wrap it above
}

// Span returns the months of the earliest and the latest value of src. ok is
// false if src has no values.
func (self *Repo) Span(ctx context.Context, src Source,
) (first, last counter.Month, ok bool, err error) {
	rows, err := self.db.Query(ctx, src.spanSQL())
	if err != nil {
		err = fmt.Errorf("repo.Span of %v: %w", src, err)
		return
	}

	type span struct {
		First *counter.Month `db:"first"`
		Last  *counter.Month `db:"last"`
	}

	s, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[span])
	if err != nil {
		err = fmt.Errorf("repo.Span of %v: %w", src, err)
		return
	} else if s.First == nil || s.Last == nil {
		return
	}
	return *s.First, *s.Last, true, nil
}
