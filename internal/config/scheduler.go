package config

import "time"

type Scheduler struct {
	DailyAt    string        `env:"SCHEDULE_DAILY_AT" envDefault:"00:10" validate:"omitempty,datetime=15:04"`
	Interval   time.Duration `env:"SCHEDULE_INTERVAL" envDefault:"6h"    validate:"gte=0"`
	RunOnStart bool          `env:"RUN_ON_START"      envDefault:"true"`
	// RunOnce makes the process run a single analysis and exit.
	RunOnce bool `env:"RUN_ONCE" envDefault:"false"`
}
