// internal/workers/analytics/build-dashboard/config.go
package builddashboard

import "time"

type Config struct {
	// TopN is how many of the highest-scored companies feed the average.
	TopN              int
	PartnerPoolTarget int
	TopScoreTarget    float64
	// ResponseRate is reported as configured until reply tracking exists.
	ResponseRate float64
	Timeout      time.Duration
}

func LoadConfig() *Config {
	return &Config{
		TopN:              10,
		PartnerPoolTarget: 100,
		TopScoreTarget:    80,
		ResponseRate:      0.15,
		Timeout:           15 * time.Second,
	}
}
