package db

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dsh2dsh/periods/cmd/internal/common"
	"github.com/dsh2dsh/periods/counter"
	"github.com/dsh2dsh/periods/internal/repo"
)

const (
	byMonth   = "month"
	byQuarter = "quarter"
)

func newUnknownBucketError(by string) error {
	return fmt.Errorf("unknown bucket %q: %w", by, counter.ErrUnsupported)
}

type Repo interface {
	MonthBuckets(ctx context.Context, src repo.Source, from, to counter.Month,
	) ([]repo.Bucket[counter.Month], error)
	QuarterBuckets(ctx context.Context, src repo.Source, from, to counter.Quarter,
	) ([]repo.Bucket[counter.Quarter], error)
	Span(ctx context.Context, src repo.Source,
	) (first, last counter.Month, ok bool, err error)
}

func NewBuckets(r Repo) *Buckets {
	return &Buckets{repo: r, logger: slog.Default()}
}

type Buckets struct {
	repo   Repo
	logger *slog.Logger

	from, to counter.Month
	bounded  bool
}

func (self *Buckets) WithLogger(l *slog.Logger) *Buckets {
	self.logger = l
	return self
}

// WithRange limits buckets to months from through to. Without it buckets span
// all values of the column.
func (self *Buckets) WithRange(from, to counter.Month) *Buckets {
	self.from, self.to, self.bounded = from, to, true
	return self
}

func (self *Buckets) log(ctx context.Context) *slog.Logger {
	return common.ContextLogger(ctx, self.logger)
}

type Report struct {
	Months   []repo.Bucket[counter.Month]
	Quarters []repo.Bucket[counter.Quarter]
}

// Collect counts rows of src by every kind of by, running the queries in
// parallel.
func (self *Buckets) Collect(ctx context.Context, src repo.Source, by []string,
) (report Report, err error) {
	months, quarters, err := parseBy(by)
	if err != nil {
		return
	}

	from, to, ok, err := self.span(ctx, src)
	if err != nil {
		return
	} else if !ok {
		self.log(ctx).Info("no values", slog.String("source", src.String()))
		return
	}

	l := self.log(ctx).With(slog.String("source", src.String()),
		slog.String("from", from.String()), slog.String("to", to.String()))
	g, ctx := errgroup.WithContext(ctx)

	if months {
		ctx := common.ContextWithLogger(ctx, l.With(slog.String("by", byMonth)))
		g.Go(func() error {
			self.log(ctx).Info("count rows")
			buckets, err := self.repo.MonthBuckets(ctx, src, from, to)
			if err != nil {
				return err //nolint:wrapcheck // returned not from external package
			}
			self.log(ctx).Info("got buckets", slog.Int("length", len(buckets)))
			report.Months = buckets
			return nil
		})
	}

	if quarters {
		ctx := common.ContextWithLogger(ctx, l.With(slog.String("by", byQuarter)))
		g.Go(func() error {
			self.log(ctx).Info("count rows")
			buckets, err := self.repo.QuarterBuckets(ctx, src,
				counter.MonthToQuarter(from), counter.MonthToQuarter(to))
			if err != nil {
				return err //nolint:wrapcheck // returned not from external package
			}
			self.log(ctx).Info("got buckets", slog.Int("length", len(buckets)))
			report.Quarters = buckets
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		err = fmt.Errorf("count %v: %w", src, err)
	}
	return
}

func (self *Buckets) span(ctx context.Context, src repo.Source,
) (from, to counter.Month, ok bool, err error) {
	if self.bounded {
		return self.from, self.to, true, nil
	}

	from, to, ok, err = self.repo.Span(ctx, src)
	if err != nil {
		err = fmt.Errorf("span of %v: %w", src, err)
	} else if ok {
		self.log(ctx).Debug("got span", slog.String("from", from.String()),
			slog.String("to", to.String()))
	}
	return
}

func (self *Report) Print(w io.Writer) error {
	for _, b := range self.Months {
		if _, err := fmt.Fprintf(w, "%v\t%d\n", b.Period, b.Count); err != nil {
			return fmt.Errorf("print buckets: %w", err)
		}
	}
	for _, b := range self.Quarters {
		if _, err := fmt.Fprintf(w, "%v\t%d\n", b.Period, b.Count); err != nil {
			return fmt.Errorf("print buckets: %w", err)
		}
	}
	return nil
}
