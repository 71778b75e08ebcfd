// internal/models/communication.go
package models

// OutreachStage is one step of the fixed five-step contact sequence.
type OutreachStage struct {
	Stage       int    `json:"stage"`
	Day         int    `json:"day"`
	Action      string `json:"action"`
	Description string `json:"description"`
}

// OutreachPlan is the full contact sequence for one company. The stage
// set and ordering are fixed by policy; only the identity fields vary.
type OutreachPlan struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"companyId"`
	Stages    []OutreachStage `json:"stages"`
}

// CommunicationLog records one send attempt for audit.
type CommunicationLog struct {
	MessageID   string `json:"messageId"`
	CompanyName string `json:"companyName"`
	Recipient   string `json:"recipient"`
	Email       string `json:"email"`
	Channel     string `json:"channel"`
	Status      string `json:"status"`
	SentAt      string `json:"sentAt"`
}
