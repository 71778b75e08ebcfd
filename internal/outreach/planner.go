// internal/outreach/planner.go
package outreach

import (
	"strings"

	"edagent-workers/internal/models"

	"github.com/google/uuid"
)

// Stage actions of the fixed contact sequence.
const (
	ActionEmail         = "Email"
	ActionEmailFollowUp = "Email follow-up"
	ActionSocialMessage = "LinkedIn message"
	ActionPhoneMeeting  = "Phone/Meeting"
	ActionFinalOffer    = "Final offer"
)

// planNamespace seeds deterministic plan IDs so regenerating a plan for
// the same company replaces it wholesale under the same identity.
var planNamespace = uuid.MustParse("8f2f6f9e-4a8b-4c9d-9a1e-2b7c5d3e1f00")

var stageTemplate = []models.OutreachStage{
	{Stage: 1, Day: 1, Action: ActionEmail, Description: "Initial personalized letter"},
	{Stage: 2, Day: 5, Action: ActionEmailFollowUp, Description: "Gentle reminder + presentation link"},
	{Stage: 3, Day: 10, Action: ActionSocialMessage, Description: "Direct message to decision maker"},
	{Stage: 4, Day: 15, Action: ActionPhoneMeeting, Description: "Direct conversation"},
	{Stage: 5, Day: 20, Action: ActionFinalOffer, Description: "Formal partnership proposal"},
}

// Stages returns a copy of the fixed five-stage sequence.
func Stages() []models.OutreachStage {
	out := make([]models.OutreachStage, len(stageTemplate))
	copy(out, stageTemplate)
	return out
}

// BuildPlan returns the fixed five-stage outreach plan for the company.
// The schedule never varies per company; only the identity does.
// Idempotent: two calls with the same company yield the same plan,
// plan ID included.
func BuildPlan(company models.CompanyProfile) models.OutreachPlan {
	return models.OutreachPlan{
		ID:        uuid.NewSHA1(planNamespace, []byte(company.ID)).String(),
		CompanyID: company.ID,
		Stages:    Stages(),
	}
}

// RenderStageContent renders the letter for the company in the given
// tone, joining its tech stack into the display label.
func RenderStageContent(company models.CompanyProfile, tone Tone) RenderedMessage {
	techStack := strings.Join(company.TechStack, ", ")
	return RenderedMessage{
		Tone:        tone,
		Recipient:   company.DecisionMaker,
		CompanyName: company.Name,
		TechStack:   techStack,
		Body:        Render(company.Name, company.DecisionMaker, techStack, tone),
	}
}
