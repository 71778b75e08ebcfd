// internal/workers/outreach/send-communication/models.go
package sendcommunication

const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

type Input struct {
	Email       string `json:"email"`
	CompanyName string `json:"companyName"`
	Recipient   string `json:"recipient"`
	Letter      string `json:"letter"`
	Stage       int    `json:"stage,omitempty"`
}

type Output struct {
	MessageID string `json:"messageId"`
	Status    string `json:"status"`
	Email     string `json:"email"`
	SMSSent   bool   `json:"smsSent"`
	SentAt    string `json:"sentAt"`
}
