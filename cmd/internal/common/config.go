package common

import (
	"fmt"

	"github.com/caarlos0/env/v10"

	"github.com/dsh2dsh/periods/counter"
)

type Layouts struct {
	Month   string `env:"PERIODS_MONTH_LAYOUT"`
	Quarter string `env:"PERIODS_QUARTER_LAYOUT"`
}

// NewLayouts returns layouts from envs, with the counter defaults for unset
// ones.
func NewLayouts() (Layouts, error) {
	cfg := Layouts{
		Month:   counter.MonthLayout,
		Quarter: counter.QuarterLayout,
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse periods envs: %w", err)
	}
	return cfg, nil
}

func ConnString() (string, error) {
	cfg := struct {
		ConnURL string `env:"PERIODS_DB_URL,notEmpty"`
	}{}
	if err := env.Parse(&cfg); err != nil {
		return "", fmt.Errorf("parse periods envs: %w", err)
	}
	return cfg.ConnURL, nil
}
