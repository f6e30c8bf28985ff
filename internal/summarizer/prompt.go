package summarizer

import (
	"fmt"
	"strings"
	"text/template"

	"energyaudit/internal/domain"
)

var promptTmpl = template.Must(template.New("audit").Parse(`You are an Energy Audit expert.

Return ONLY valid JSON in this format:
{
  "summary": "simple summary",
  "attention": [
    { "area": "HVAC", "issue": "problem", "priority": "High" }
  ],
  "graph": {
    "Lighting": 25,
    "HVAC": 40,
    "Insulation": 20,
    "Equipment": 15
  }
}

Rules:
- "priority" is one of "Low", "Medium", "High".
- "graph" has exactly the keys "Lighting", "HVAC", "Insulation", "Equipment" with numeric percentages.
- Write "summary", "area" and "issue" in {{.Language}}. Keep JSON keys and priority values in English.

Report:
{{.Report}}
`))

// BuildPrompt renders the instruction prompt for input. Report text longer
// than maxChars runes is cut to maxChars; maxChars == 0 means no limit.
func BuildPrompt(input Input, maxChars int) (string, error) {
	language := input.Language
	if language == "" {
		language = domain.LanguageEnglish
	}

	var b strings.Builder
	err := promptTmpl.Execute(&b, struct {
		Language domain.Language
		Report   string
	}{
		Language: language,
		Report:   Truncate(input.Text, maxChars),
	})
	if err != nil {
		return "", fmt.Errorf("execute prompt template: %w", err)
	}

	return b.String(), nil
}

// Truncate returns the first maxChars runes of text.
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 {
		return text
	}

	count := 0
	for i := range text {
		if count == maxChars {
			return text[:i]
		}
		count++
	}

	return text
}
