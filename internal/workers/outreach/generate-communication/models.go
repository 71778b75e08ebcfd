// internal/workers/outreach/generate-communication/models.go
package generatecommunication

import "edagent-workers/internal/models"

type Input struct {
	CompanyID   string `json:"companyId"`
	CompanyName string `json:"companyName"`
	Recipient   string `json:"recipient"`
	Email       string `json:"email"`
	TechStack   string `json:"techStack"`
	Style       string `json:"style,omitempty"`
}

type Output struct {
	Status            string                 `json:"status"`
	CompanyID         string                 `json:"companyId"`
	CompanyName       string                 `json:"companyName"`
	SelectedTone      string                 `json:"selectedTone"`
	LetterFormal      string                 `json:"letterFormal"`
	LetterCasual      string                 `json:"letterCasual"`
	PlanID            string                 `json:"planId"`
	CommunicationPlan []models.OutreachStage `json:"communicationPlan"`
	Timestamp         string                 `json:"timestamp"`
}
