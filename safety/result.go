package safety

import (
	"time"

	"github.com/medsafe/interactions-api/formulary/entities"
)

// RiskSummary carries the per-tier counts of one analysis. The five flag
// counts always sum to TotalInteractions.
type RiskSummary struct {
	TotalMedications                int `json:"total_medications"`
	TotalInteractions               int `json:"total_interactions"`
	BlackFlags                      int `json:"black_flags"`
	RedFlags                        int `json:"red_flags"`
	OrangeFlags                     int `json:"orange_flags"`
	YellowFlags                     int `json:"yellow_flags"`
	GreenFlags                      int `json:"green_flags"`
	MedicationsWithBlackBoxWarnings int `json:"medications_with_black_box_warnings"`
}

// AnalysisResult is the full output of one analysis call.
//
// AnalyzedMedications keeps duplicates when two input names resolve to the
// same drug; UnmatchedNames echoes inputs that resolved to nothing so a
// caller can tell a typo from "no interactions found".
type AnalysisResult struct {
	ReportID                string                 `json:"report_id"`
	GeneratedAt             time.Time              `json:"generated_at"`
	AnalyzedMedications     []entities.Drug        `json:"analyzed_medications"`
	UnmatchedNames          []string               `json:"unmatched_names,omitempty"`
	Interactions            []entities.Interaction `json:"interactions"`
	BlackFlags              []entities.Interaction `json:"black_flags"`
	RedFlags                []entities.Interaction `json:"red_flags"`
	OrangeFlags             []entities.Interaction `json:"orange_flags"`
	YellowFlags             []entities.Interaction `json:"yellow_flags"`
	GreenFlags              []entities.Interaction `json:"green_flags"`
	OverallRiskLevel        string                 `json:"overall_risk_level"`
	RiskSummary             RiskSummary            `json:"risk_summary"`
	ClinicalRecommendations []string               `json:"clinical_recommendations"`
}
