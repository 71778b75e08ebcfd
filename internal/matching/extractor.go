// internal/matching/extractor.go
package matching

import "strings"

// vocabulary is the fixed set of recognized competency labels.
var vocabulary = []string{
	"Python", "JavaScript", "SQL", "Machine Learning", "Java",
	"DevOps", "AWS", "React", "Kubernetes", "Go", "C++",
	"Docker", "Microservices", "GraphQL", "Rust",
}

// Vocabulary returns the recognized competency labels.
func Vocabulary() []string {
	out := make([]string, len(vocabulary))
	copy(out, vocabulary)
	return out
}

// Extract returns the competency labels mentioned in the text.
// Matching is case-insensitive substring containment against the fixed
// vocabulary; empty or unrecognized text yields an empty set. Result
// order follows the vocabulary, so identical text always produces an
// identical slice.
func Extract(text string) []string {
	if text == "" {
		return []string{}
	}

	lowered := strings.ToLower(text)
	found := make([]string, 0, 4)
	for _, label := range vocabulary {
		if strings.Contains(lowered, strings.ToLower(label)) {
			found = append(found, label)
		}
	}
	return found
}
