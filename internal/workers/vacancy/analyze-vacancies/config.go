// internal/workers/vacancy/analyze-vacancies/config.go
package analyzevacancies

import "time"

type Config struct {
	DefaultQuery string
	SampleSize   int
	Timeout      time.Duration
}

func LoadConfig() *Config {
	return &Config{
		DefaultQuery: "Python developer",
		SampleSize:   10,
		Timeout:      30 * time.Second,
	}
}
