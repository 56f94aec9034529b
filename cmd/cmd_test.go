package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsh2dsh/periods/cmd/internal/common"
	"github.com/dsh2dsh/periods/counter"
)

func defaultLayouts() common.Layouts {
	return common.Layouts{
		Month:   counter.MonthLayout,
		Quarter: counter.QuarterLayout,
	}
}

func TestPrintParsed(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, printParsed(&b, counter.ParseMonthLayout, "dd.mm.yyyy",
		[]string{"17.08.2021", "01.01.1999"}))
	assert.Equal(t, "2021-08\n1999-01\n", b.String())

	b.Reset()
	require.NoError(t, printParsed(&b, counter.ParseQuarterLayout,
		`yyyy/\Q\T\Rq`, []string{"2023/QTR4"}))
	assert.Equal(t, "2023-Q4\n", b.String())

	b.Reset()
	err := printParsed(&b, counter.ParseMonthLayout, counter.MonthLayout,
		[]string{"2021-07", "not-a-date"})
	require.ErrorIs(t, err, counter.ErrParse)
	assert.Equal(t, "2021-07\n", b.String())
}

func TestLayoutsWithFlags(t *testing.T) {
	t.Setenv("PERIODS_MONTH_LAYOUT", "")
	t.Setenv("PERIODS_QUARTER_LAYOUT", "")
	layoutFlag = ""

	layouts, err := layoutsWithFlags()
	require.NoError(t, err)
	assert.Equal(t, defaultLayouts(), layouts)

	layoutFlag = "yyyy"
	t.Cleanup(func() { layoutFlag = "" })
	layouts, err = layoutsWithFlags()
	require.NoError(t, err)
	assert.Equal(t, common.Layouts{Month: "yyyy", Quarter: "yyyy"}, layouts)
}

func TestConvert(t *testing.T) {
	tests := []struct {
		text string
		to   string
		want string
	}{
		{"2021-08", "quarter", "2021-Q3"},
		{"2021-08", "month", "2021-08"},
		{"2021-08", "date", "2021-08-01"},
		{"2021-Q3", "month", "2021-07"},
		{"2021-Q3", "quarter", "2021-Q3"},
		{"2021-Q3", "date", "2021-07-01"},
		{"-0005-03", "quarter", "-0005-Q1"},
	}

	for _, tt := range tests {
		t.Run(tt.text+" to "+tt.to, func(t *testing.T) {
			s, err := convert(defaultLayouts(), tt.text, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}

	_, err := convert(defaultLayouts(), "2021-08", "week")
	require.ErrorIs(t, err, counter.ErrUnsupported)
	_, err = convert(defaultLayouts(), "August", "month")
	require.ErrorIs(t, err, counter.ErrParse)
}

func TestParseStep(t *testing.T) {
	tests := []struct {
		step    string
		n       int64
		unit    counter.Unit
		wantErr bool
	}{
		{step: "3m", n: 1, unit: counter.Quarters},
		{step: "5m", n: 5, unit: counter.Months},
		{step: "6months", n: 2, unit: counter.Quarters},
		{step: "24m", n: 2, unit: counter.Years},
		{step: "1q", n: 1, unit: counter.Quarters},
		{step: "q", n: 1, unit: counter.Quarters},
		{step: "2years", n: 2, unit: counter.Years},
		{step: "5", n: 5},
		{step: "P3M", n: 1, unit: counter.Quarters},
		{step: "P1Y", n: 1, unit: counter.Years},
		{step: "P1Y1M", n: 13, unit: counter.Months},
		{step: "P2D", wantErr: true},
		{step: "3w", wantErr: true},
		{step: "", wantErr: true},
		{step: "m3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.step, func(t *testing.T) {
			n, unit, err := parseStep(tt.step)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.n, n)
			assert.Equal(t, tt.unit, unit)
		})
	}
}

func TestPrintRange(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		step    string
		want    []string
		errorIs error
	}{
		{
			name: "quarters",
			from: "2023-Q1",
			to:   "2024-Q1",
			step: "1",
			want: []string{"2023-Q1", "2023-Q2", "2023-Q3", "2023-Q4", "2024-Q1"},
		},
		{
			name: "quarters by months",
			from: "2023-Q1",
			to:   "2024-Q1",
			step: "6m",
			want: []string{"2023-Q1", "2023-Q3", "2024-Q1"},
		},
		{
			name: "months by quarter",
			from: "2020-11",
			to:   "2021-05",
			step: "1q",
			want: []string{"2020-11", "2021-02", "2021-05"},
		},
		{
			name: "months by ISO period",
			from: "2020-01",
			to:   "2021-01",
			step: "P6M",
			want: []string{"2020-01", "2020-07", "2021-01"},
		},
		{
			name:    "quarters by month",
			from:    "2023-Q1",
			to:      "2024-Q1",
			step:    "1m",
			errorIs: counter.ErrUnsupported,
		},
		{
			name:    "zero step",
			from:    "2023-01",
			to:      "2024-01",
			step:    "0",
			errorIs: counter.ErrRange,
		},
		{
			name:    "mixed kinds",
			from:    "2023-Q1",
			to:      "2024-01",
			step:    "1",
			errorIs: counter.ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b bytes.Buffer
			err := printRange(&b, defaultLayouts(), tt.from, tt.to, tt.step)
			if tt.errorIs != nil {
				require.ErrorIs(t, err, tt.errorIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.Fields(b.String()))
		})
	}
}

func TestCountSteps(t *testing.T) {
	n, err := countSteps(defaultLayouts(), "2020-01", "2021-01", counter.Quarters)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	n, err = countSteps(defaultLayouts(), "2020-Q1", "2021-Q3", counter.Years)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = countSteps(defaultLayouts(), "2020-Q1", "2021-Q3", counter.Months)
	require.ErrorIs(t, err, counter.ErrUnsupported)
}
