// internal/outreach/template.go
package outreach

import "fmt"

// Tone selects the rendering style for outreach letters.
type Tone string

const (
	ToneFormal Tone = "formal"
	ToneCasual Tone = "casual"
)

// ParseTone maps external input onto the two supported tones. Only the
// exact string "formal" selects the formal letter; everything else,
// including different casing, falls through to casual.
func ParseTone(s string) Tone {
	if s == "formal" {
		return ToneFormal
	}
	return ToneCasual
}

// RenderedMessage is the output of rendering one letter. Ephemeral;
// never persisted here.
type RenderedMessage struct {
	Tone        Tone   `json:"tone"`
	Recipient   string `json:"recipient"`
	CompanyName string `json:"companyName"`
	TechStack   string `json:"techStack"`
	Body        string `json:"body"`
}

const formalLetter = `Dear %s,

I am reaching out to discuss a potential partnership opportunity with %s.

We have identified your company as a leader in %s technologies and believe there is significant potential for collaboration through our ПроКомпетенции program.

Our program brings together talented students with companies seeking innovative solutions. This partnership would provide:

• Access to skilled professionals in %s
• Fresh perspectives on your current projects
• Opportunity to mentor the next generation of engineers
• Potential for full-time hiring of top performers

I would welcome a conversation about how we can create value for %s.

Best regards,
EdAgent AI Team`

const casualLetter = `Hey %s!

We noticed %s is doing amazing work with %s. We have a group of talented students who would love to contribute to projects like yours.

Think of it as a win-win:
✨ You get fresh ideas and extra hands on deck
✨ They get real-world experience working with your team
✨ Everyone learns something awesome

Interested in chatting more? Let's set up a quick call.

Cheers,
EdAgent AI Team`

// Render produces the letter body for the given tone. Pure; identical
// inputs always yield identical output.
func Render(companyName, recipient, techStack string, tone Tone) string {
	if tone == ToneFormal {
		return fmt.Sprintf(formalLetter, recipient, companyName, techStack, techStack, companyName)
	}
	return fmt.Sprintf(casualLetter, recipient, companyName, techStack)
}
