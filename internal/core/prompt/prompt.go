// Package prompt renders the analysis instructions sent to the model
package prompt

import (
	"strconv"
	"strings"

	"adscope/internal/core/transcript"
)

// Mode selects what the transcript is matched against
type Mode string

const (
	// ModeIntent matches against a catalog intent
	ModeIntent Mode = "intent"
	// ModePrompt matches against a free text query
	ModePrompt Mode = "prompt"
)

// Valid reports whether m is a known mode
func (m Mode) Valid() bool { return m == ModeIntent || m == ModePrompt }

// InclusionScore is the minimum score the model is told to report
const InclusionScore = 60

// Target is what a transcript is searched for
// Intent fields are used in ModeIntent, Query in ModePrompt
type Target struct {
	Mode        Mode
	Name        string
	Description string
	Keywords    []string
	Query       string

	// Wrapped asks for {"matches": [...]} when the model may only answer with an object
	Wrapped bool
}

// IntentTarget builds a Target for catalog intents
func IntentTarget(name, description string, keywords []string) Target {
	return Target{Mode: ModeIntent, Name: name, Description: description, Keywords: keywords}
}

// QueryTarget builds a Target for free text queries
func QueryTarget(query string) Target {
	return Target{Mode: ModePrompt, Query: query}
}

// Build renders the full prompt for one transcript and one target
func Build(lines []transcript.Line, t Target) string {
	var b strings.Builder
	b.Grow(1024 + 64*len(lines))

	b.WriteString("You are an analyst reviewing the transcript of a marketing video.\n")
	switch t.Mode {
	case ModePrompt:
		b.WriteString("Find every passage that answers the user's request below.\n\n")
		b.WriteString("## Request\n")
		b.WriteString(strings.TrimSpace(t.Query))
		b.WriteString("\n\n")
	default:
		b.WriteString("Find every passage that expresses the intent below.\n\n")
		b.WriteString("## Intent\n")
		b.WriteString("Name: ")
		b.WriteString(t.Name)
		b.WriteString("\nDescription: ")
		b.WriteString(t.Description)
		if len(t.Keywords) > 0 {
			b.WriteString("\nTypical keywords: ")
			b.WriteString(strings.Join(t.Keywords, ", "))
		}
		b.WriteString("\n\n")
	}

	b.WriteString("## Transcript\n")
	b.WriteString("Each line is formatted as [timestamp] text.\n")
	if len(lines) == 0 {
		b.WriteString("(the transcript is empty)\n")
	} else {
		b.WriteString(transcript.Render(lines))
		b.WriteByte('\n')
	}

	b.WriteString("\n## Rules\n")
	b.WriteString("1. Score each candidate passage from 0 to 100 for how well it matches.\n")
	b.WriteString("2. Only include passages with a score of at least ")
	b.WriteString(strconv.Itoa(InclusionScore))
	b.WriteString(".\n")
	b.WriteString("3. Copy timestamps exactly as they appear in the transcript.\n")
	b.WriteString("4. A passage may span several consecutive lines.\n")

	b.WriteString("\n## Output\n")
	b.WriteString("Respond with a JSON array only, no prose and no markdown. Each element is an object with these fields:\n")
	b.WriteString("- start_timestamp: timestamp of the first line of the passage\n")
	b.WriteString("- end_timestamp: timestamp of the last line of the passage\n")
	b.WriteString("- context: the passage with enough surrounding lines to read on its own\n")
	b.WriteString("- core_text: the exact words that carry the match\n")
	b.WriteString("- score: integer from 0 to 100\n")
	if t.Wrapped {
		b.WriteString("Your reply must be a JSON object, so put the array under a single key: {\"matches\": [...]}.\n")
		b.WriteString("If nothing qualifies, respond with {\"matches\": []}.\n")
	} else {
		b.WriteString("If nothing qualifies, respond with [].\n")
	}

	return b.String()
}
