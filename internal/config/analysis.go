package config

import "time"

type Analysis struct {
	DataDir     string  `env:"BASE_DATA_DIR,required"     validate:"required"`
	AnalysisDir string  `env:"BASE_ANALYSIS_DIR,required" validate:"required"`
	Threshold   float64 `env:"DEAL_THRESHOLD"             envDefault:"50" validate:"gte=0,lte=100"`
}

type AI struct {
	URL            string        `env:"AI_API_URL,required"   validate:"required,url"`
	APIKey         string        `env:"AI_API_KEY,required"   validate:"required"`
	Mode           string        `env:"AI_MODE"               envDefault:"query"`
	User           string        `env:"AI_USER"               envDefault:"deal-analyzer"`
	Timeout        time.Duration `env:"AI_TIMEOUT"            envDefault:"2m"  validate:"gt=0"`
	CacheTTL       time.Duration `env:"AI_CACHE_TTL"          envDefault:"0s"  validate:"gte=0"`
	LogFieldMaxLen int           `env:"AI_LOG_FIELD_MAX_LEN"  envDefault:"4096" validate:"gte=0"`
}
