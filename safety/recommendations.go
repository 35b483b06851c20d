package safety

import (
	"fmt"

	"github.com/medsafe/interactions-api/formulary/entities"
)

// Recommendation section headers and the fixed general-precautions block.
// Section order is stable: black, red, orange, black-box warnings, then the
// general block when anything at or above RED_FLAG was found. Yellow and
// green findings get no advisory lines; they stay in the raw interaction
// list only.
const (
	headerBlack    = "CRITICAL: This combination is CONTRAINDICATED. Do NOT use together without specialist consultation."
	headerRed      = "DANGEROUS: Serious interaction risk detected. Requires immediate medical review."
	headerOrange   = "WARNING: Major interactions detected. Close monitoring required."
	headerBlackBox = "BLACK BOX WARNINGS:"
	headerGeneral  = "General Recommendations:"
)

var generalPrecautions = []string{
	"  - Consult prescribing physician or pharmacist immediately",
	"  - Do not start, stop, or change doses without medical supervision",
	"  - Monitor for signs of adverse effects",
	"  - Keep all healthcare providers informed of all medications",
}

// buildRecommendations assembles the ordered advisory list for one analysis.
func buildRecommendations(medications []entities.Drug,
	buckets map[entities.Severity][]entities.Interaction) []string {

	recommendations := []string{}

	if flags := buckets[entities.BlackFlag]; len(flags) > 0 {
		recommendations = append(recommendations, headerBlack)
		for _, flag := range flags {
			recommendations = append(recommendations, "  -> "+flag.Recommendation)
		}
	}

	if flags := buckets[entities.RedFlag]; len(flags) > 0 {
		recommendations = append(recommendations, headerRed)
		for _, flag := range flags {
			recommendations = append(recommendations, "  -> "+flag.Recommendation)
		}
	}

	if flags := buckets[entities.OrangeFlag]; len(flags) > 0 {
		recommendations = append(recommendations, headerOrange)
		for _, flag := range flags {
			recommendations = append(recommendations, "  -> "+flag.Recommendation)
		}
	}

	// One line per analyzed medication carrying a black-box warning, in
	// analysis order.
	var warned bool
	for i := range medications {
		bbw := medications[i].BlackBoxWarning
		if bbw == nil {
			continue
		}
		if !warned {
			recommendations = append(recommendations, headerBlackBox)
			warned = true
		}
		recommendations = append(recommendations,
			fmt.Sprintf("  -> %s: %s", medications[i].Name, bbw.Warning))
	}

	if len(buckets[entities.BlackFlag]) > 0 || len(buckets[entities.RedFlag]) > 0 {
		recommendations = append(recommendations, headerGeneral)
		recommendations = append(recommendations, generalPrecautions...)
	}

	return recommendations
}
