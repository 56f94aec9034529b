package db

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dsh2dsh/periods/counter"
	"github.com/dsh2dsh/periods/internal/repo"
)

type mockRepo struct {
	mock.Mock
}

func (self *mockRepo) MonthBuckets(ctx context.Context, src repo.Source,
	from, to counter.Month,
) ([]repo.Bucket[counter.Month], error) {
	args := self.Called(ctx, src, from, to)
	buckets, _ := args.Get(0).([]repo.Bucket[counter.Month])
	return buckets, args.Error(1)
}

func (self *mockRepo) QuarterBuckets(ctx context.Context, src repo.Source,
	from, to counter.Quarter,
) ([]repo.Bucket[counter.Quarter], error) {
	args := self.Called(ctx, src, from, to)
	buckets, _ := args.Get(0).([]repo.Bucket[counter.Quarter])
	return buckets, args.Error(1)
}

func (self *mockRepo) Span(ctx context.Context, src repo.Source,
) (first, last counter.Month, ok bool, err error) {
	args := self.Called(ctx, src)
	return args.Get(0).(counter.Month), args.Get(1).(counter.Month),
		args.Bool(2), args.Error(3)
}

func TestBuckets_Collect(t *testing.T) {
	src := repo.Source{Table: "fact_units", Column: "filed"}
	from := counter.MustMonth(2023, 1)
	to := counter.MustMonth(2023, 5)
	months := []repo.Bucket[counter.Month]{
		{Period: from, Count: 2},
		{Period: to, Count: 1},
	}
	quarters := []repo.Bucket[counter.Quarter]{
		{Period: counter.MustQuarter(2023, 1), Count: 2},
		{Period: counter.MustQuarter(2023, 2), Count: 1},
	}
	wantErr := errors.New("test error")

	tests := []struct {
		name    string
		by      []string
		bounded bool
		prepare func(r *mockRepo)
		want    Report
		wantErr error
	}{
		{
			name: "month and quarter",
			by:   []string{byMonth, byQuarter},
			prepare: func(r *mockRepo) {
				r.On("Span", mock.Anything, src).Return(from, to, true, nil)
				r.On("MonthBuckets", mock.Anything, src, from, to).
					Return(months, nil)
				r.On("QuarterBuckets", mock.Anything, src,
					counter.MustQuarter(2023, 1), counter.MustQuarter(2023, 2)).
					Return(quarters, nil)
			},
			want: Report{Months: months, Quarters: quarters},
		},
		{
			name: "quarter only",
			by:   []string{"Quarter", "quarter"},
			prepare: func(r *mockRepo) {
				r.On("Span", mock.Anything, src).Return(from, to, true, nil)
				r.On("QuarterBuckets", mock.Anything, src,
					counter.MustQuarter(2023, 1), counter.MustQuarter(2023, 2)).
					Return(quarters, nil)
			},
			want: Report{Quarters: quarters},
		},
		{
			name:    "bounded",
			by:      []string{byMonth},
			bounded: true,
			prepare: func(r *mockRepo) {
				r.On("MonthBuckets", mock.Anything, src, from, to).
					Return(months, nil)
			},
			want: Report{Months: months},
		},
		{
			name: "empty table",
			by:   []string{byMonth},
			prepare: func(r *mockRepo) {
				r.On("Span", mock.Anything, src).
					Return(counter.Month{}, counter.Month{}, false, nil)
			},
		},
		{
			name:    "unknown bucket",
			by:      []string{"week"},
			prepare: func(r *mockRepo) {},
			wantErr: counter.ErrUnsupported,
		},
		{
			name: "span error",
			by:   []string{byMonth},
			prepare: func(r *mockRepo) {
				r.On("Span", mock.Anything, src).
					Return(counter.Month{}, counter.Month{}, false, wantErr)
			},
			wantErr: wantErr,
		},
		{
			name: "buckets error",
			by:   []string{byMonth},
			prepare: func(r *mockRepo) {
				r.On("Span", mock.Anything, src).Return(from, to, true, nil)
				r.On("MonthBuckets", mock.Anything, src, from, to).
					Return(nil, wantErr)
			},
			wantErr: wantErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := new(mockRepo)
			tt.prepare(r)
			b := NewBuckets(r)
			if tt.bounded {
				b.WithRange(from, to)
			}

			report, err := b.Collect(context.Background(), src, tt.by)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, report)
			r.AssertExpectations(t)
		})
	}
}

func TestReport_Print(t *testing.T) {
	report := Report{
		Months: []repo.Bucket[counter.Month]{
			{Period: counter.MustMonth(2023, 11), Count: 3},
		},
		Quarters: []repo.Bucket[counter.Quarter]{
			{Period: counter.MustQuarter(2023, 4), Count: 7},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, report.Print(&buf))
	assert.Equal(t, "2023-11\t3\n2023-Q4\t7\n", buf.String())
}

func TestParseBy(t *testing.T) {
	months, quarters, err := parseBy([]string{" month "})
	require.NoError(t, err)
	assert.True(t, months)
	assert.False(t, quarters)

	_, _, err = parseBy([]string{"day"})
	require.ErrorIs(t, err, counter.ErrUnsupported)
}
