// internal/workers/company/search-companies/config.go
package searchcompanies

import "time"

type Config struct {
	DefaultLocation string
	DefaultLimit    int
	Timeout         time.Duration
}

func LoadConfig() *Config {
	return &Config{
		DefaultLocation: "Moscow",
		DefaultLimit:    100,
		Timeout:         30 * time.Second,
	}
}
