package domain

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Graph categories the model is asked to weight.
const (
	CategoryLighting   = "Lighting"
	CategoryHVAC       = "HVAC"
	CategoryInsulation = "Insulation"
	CategoryEquipment  = "Equipment"
)

type AttentionItem struct {
	Area     string   `json:"area"`
	Issue    string   `json:"issue"`
	Priority Priority `json:"priority"`
}

// AuditSummary is the JSON shape shared by the model, the API and the PDF report.
// Graph weights are advisory percentages and are not required to sum to 100.
type AuditSummary struct {
	Summary   string             `json:"summary"`
	Attention []AttentionItem    `json:"attention"`
	Graph     map[string]float64 `json:"graph,omitempty"`
}

type Language string

const (
	LanguageEnglish Language = "English"
	LanguageHindi   Language = "Hindi"
)

// LanguageFromCode maps the lang form value to a prompt language.
// Only "hi" selects Hindi.
func LanguageFromCode(code string) Language {
	if code == "hi" {
		return LanguageHindi
	}

	return LanguageEnglish
}

// FallbackSummary is returned when the model output is not valid JSON.
func FallbackSummary() AuditSummary {
	return AuditSummary{
		Summary: "AI could not generate a clean summary for this report, but the system is working.",
		Attention: []AttentionItem{
			{
				Area:     "Manual Review",
				Issue:    "AI output format issue",
				Priority: PriorityMedium,
			},
		},
		Graph: map[string]float64{
			CategoryLighting:   25,
			CategoryHVAC:       25,
			CategoryInsulation: 25,
			CategoryEquipment:  25,
		},
	}
}
