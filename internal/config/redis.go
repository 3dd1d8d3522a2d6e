package config

import "time"

// Redis enables the shared run lock when Addr is set.
type Redis struct {
	Addr     string        `env:"REDIS_ADDR"     validate:"omitempty,hostname_port"`
	Username string        `env:"REDIS_USERNAME"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB"       envDefault:"0" validate:"gte=0"`
	LockKey  string        `env:"RUN_LOCK_KEY"   envDefault:"deal-analyzer:run-lock" validate:"required"`
	LockTTL  time.Duration `env:"RUN_LOCK_TTL"   envDefault:"1h" validate:"gt=0"`
}

func (r Redis) Enabled() bool {
	return r.Addr != ""
}
