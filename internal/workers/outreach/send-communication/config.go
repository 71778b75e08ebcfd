// internal/workers/outreach/send-communication/config.go
package sendcommunication

import "time"

type Config struct {
	AWSRegion    string
	ProgramName  string
	FromEmail    string
	EmailEnabled bool
	SMSEnabled   bool
	OwnerPhone   string
	// NudgeStages are the plan stages that trigger the owner SMS.
	NudgeStages []int
	Timeout     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		AWSRegion:    "eu-west-1",
		ProgramName:  "ПроКомпетенции",
		FromEmail:    "noreply@edagent.ai",
		EmailEnabled: true,
		SMSEnabled:   false,
		NudgeStages:  []int{4},
		Timeout:      30 * time.Second,
	}
}
