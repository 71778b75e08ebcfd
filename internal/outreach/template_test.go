// internal/outreach/template_test.go
package outreach

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Tone Parsing Tests
// ==========================

func TestParseTone(t *testing.T) {
	tests := []struct {
		input    string
		expected Tone
	}{
		{"formal", ToneFormal},
		{"casual", ToneCasual},
		{"", ToneCasual},
		{"Formal", ToneCasual},
		{"FORMAL", ToneCasual},
		{"CASUAL", ToneCasual},
		{"friendly", ToneCasual},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTone(tt.input))
		})
	}
}

// ==========================
// Rendering Tests
// ==========================

func TestRender_FormalAndCasualDiffer(t *testing.T) {
	formal := Render("Acme Corp", "Jane Smith", "Python, Go", ToneFormal)
	casual := Render("Acme Corp", "Jane Smith", "Python, Go", ToneCasual)

	assert.NotEqual(t, formal, casual)
	assert.True(t, strings.HasPrefix(formal, "Dear Jane Smith,"))
	assert.True(t, strings.HasPrefix(casual, "Hey Jane Smith!"))
}

func TestRender_FormalContent(t *testing.T) {
	body := Render("Acme Corp", "Jane Smith", "Python, Kubernetes", ToneFormal)

	assert.Contains(t, body, "partnership opportunity with Acme Corp")
	assert.Contains(t, body, "leader in Python, Kubernetes technologies")
	assert.Contains(t, body, "Access to skilled professionals in Python, Kubernetes")
	assert.Contains(t, body, "create value for Acme Corp")
	assert.Contains(t, body, "ПроКомпетенции")
	assert.True(t, strings.HasSuffix(body, "Best regards,\nEdAgent AI Team"))
}

func TestRender_CasualContent(t *testing.T) {
	body := Render("Acme Corp", "Jane Smith", "Rust", ToneCasual)

	assert.Contains(t, body, "Acme Corp is doing amazing work with Rust")
	assert.Contains(t, body, "win-win")
	assert.True(t, strings.HasSuffix(body, "Cheers,\nEdAgent AI Team"))
}

func TestRender_UnknownToneFallsToCasual(t *testing.T) {
	casual := Render("Acme Corp", "Jane Smith", "Go", ToneCasual)
	other := Render("Acme Corp", "Jane Smith", "Go", Tone("something_else"))

	assert.Equal(t, casual, other)
}

func TestRender_Deterministic(t *testing.T) {
	first := Render("Acme Corp", "Jane Smith", "Go", ToneFormal)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Render("Acme Corp", "Jane Smith", "Go", ToneFormal))
	}
}
