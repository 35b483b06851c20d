package safety

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medsafe/interactions-api/data"
	"github.com/medsafe/interactions-api/formulary/entities"
)

func newTestEngine(drugs []entities.Drug, interactions []entities.Interaction) *Engine {
	drugsMap := make(map[string]entities.Drug, len(drugs))
	for i := range drugs {
		drugsMap[drugs[i].ID] = drugs[i]
	}

	dc := data.NewDataContainer()
	dc.SetFormulary(drugs, drugsMap, interactions)
	return NewEngine(dc)
}

func fixtureDrugs() []entities.Drug {
	return []entities.Drug{
		{
			ID:          "warfarin",
			Name:        "Warfarin",
			GenericName: "warfarin sodium",
			BrandNames:  []string{"Coumadin", "Jantoven"},
			DrugClass:   "Anticoagulant",
			BlackBoxWarning: &entities.BlackBoxWarning{
				Title:   "Bleeding risk",
				Warning: "Warfarin can cause major or fatal bleeding.",
			},
		},
		{
			ID:          "aspirin",
			Name:        "Aspirin",
			GenericName: "acetylsalicylic acid",
			BrandNames:  []string{"Bayer"},
			DrugClass:   "NSAID",
		},
		{
			ID:          "sertraline",
			Name:        "Sertraline",
			GenericName: "sertraline hydrochloride",
			BrandNames:  []string{"Zoloft"},
			DrugClass:   "SSRI",
		},
		{
			ID:          "phenelzine",
			Name:        "Phenelzine",
			GenericName: "phenelzine sulfate",
			BrandNames:  []string{"Nardil"},
			DrugClass:   "MAOI",
		},
	}
}

func fixtureInteractions() []entities.Interaction {
	return []entities.Interaction{
		{
			DrugA:          "sertraline",
			DrugB:          "phenelzine",
			Severity:       entities.BlackFlag,
			Recommendation: "Contraindicated. Allow a 14-day washout.",
		},
		{
			DrugA:          "warfarin",
			DrugB:          "aspirin",
			Severity:       entities.RedFlag,
			Recommendation: "Avoid combination; monitor INR closely.",
		},
	}
}

func TestFindMedicationExactMatches(t *testing.T) {
	engine := newTestEngine(fixtureDrugs(), nil)

	cases := []struct {
		input string
		id    string
	}{
		{"Warfarin", "warfarin"},
		{"warfarin sodium", "warfarin"},
		{"Coumadin", "warfarin"},
		{"JANTOVEN", "warfarin"},
		{"  aspirin  ", "aspirin"},
		{"ZoLoFt", "sertraline"},
		{"acetylsalicylic acid", "aspirin"},
	}

	for _, tc := range cases {
		drug, ok := engine.FindMedication(tc.input)
		require.True(t, ok, "expected a match for %q", tc.input)
		assert.Equal(t, tc.id, drug.ID, "input %q", tc.input)
	}
}

func TestFindMedicationEmptyInputNeverMatches(t *testing.T) {
	engine := newTestEngine(fixtureDrugs(), nil)

	for _, input := range []string{"", "   ", "\t\n"} {
		_, ok := engine.FindMedication(input)
		assert.False(t, ok, "input %q must not match", input)
	}
}

func TestFindMedicationSubstringFallback(t *testing.T) {
	engine := newTestEngine(fixtureDrugs(), nil)

	drug, ok := engine.FindMedication("coumad")
	require.True(t, ok)
	assert.Equal(t, "warfarin", drug.ID)
}

func TestFindMedicationExactPassBeatsEarlierSubstring(t *testing.T) {
	// The earlier drug contains the query as a substring, the later one
	// matches exactly. The exact pass runs over the whole set first.
	drugs := []entities.Drug{
		{ID: "baby-aspirin", Name: "Baby Aspirin"},
		{ID: "aspirin", Name: "Aspirin"},
	}
	engine := newTestEngine(drugs, nil)

	drug, ok := engine.FindMedication("aspirin")
	require.True(t, ok)
	assert.Equal(t, "aspirin", drug.ID)
}

func TestFindMedicationAmbiguousSubstringFirstWins(t *testing.T) {
	drugs := []entities.Drug{
		{ID: "carbamazepine", Name: "Carbamazepine"},
		{ID: "oxcarbazepine", Name: "Oxcarbazepine"},
	}
	engine := newTestEngine(drugs, nil)

	drug, ok := engine.FindMedication("carba")
	require.True(t, ok)
	assert.Equal(t, "carbamazepine", drug.ID, "first drug in dataset order must win")
}

func TestAnalyzeNoMatches(t *testing.T) {
	engine := newTestEngine(fixtureDrugs(), fixtureInteractions())

	_, err := engine.Analyze([]string{})
	assert.ErrorIs(t, err, ErrNoMedicationsMatched)

	_, err = engine.Analyze([]string{"totally-unknown-xyz"})
	assert.ErrorIs(t, err, ErrNoMedicationsMatched)
}

func TestAnalyzeUnmatchedNamesReported(t *testing.T) {
	engine := newTestEngine(fixtureDrugs(), fixtureInteractions())

	result, err := engine.Analyze([]string{"warfarin", "totally-unknown-xyz"})
	require.NoError(t, err)

	assert.Len(t, result.AnalyzedMedications, 1)
	assert.Equal(t, []string{"totally-unknown-xyz"}, result.UnmatchedNames)
}

func TestAnalyzeDuplicateAliasesNoSelfInteraction(t *testing.T) {
	engine := newTestEngine(fixtureDrugs(), fixtureInteractions())

	result, err := engine.Analyze([]string{"Warfarin", "Coumadin"})
	require.NoError(t, err)

	// Duplicates stay in the analyzed list
	require.Len(t, result.AnalyzedMedications, 2)
	assert.Equal(t, "warfarin", result.AnalyzedMedications[0].ID)
	assert.Equal(t, "warfarin", result.AnalyzedMedications[1].ID)

	// but never produce a self-interaction
	assert.Empty(t, result.Interactions)
	assert.Equal(t, RiskLow, result.OverallRiskLevel)
}

func TestAnalyzeSelfPairRecordsAreSkipped(t *testing.T) {
	interactions := []entities.Interaction{
		{DrugA: "aspirin", DrugB: "aspirin", Severity: entities.RedFlag},
	}
	engine := newTestEngine(fixtureDrugs(), interactions)

	result, err := engine.Analyze([]string{"aspirin"})
	require.NoError(t, err)
	assert.Empty(t, result.Interactions)
}

func TestAnalyzeBrandAndNamePair(t *testing.T) {
	engine := newTestEngine(fixtureDrugs(), fixtureInteractions())

	result, err := engine.Analyze([]string{"Coumadin", "Aspirin"})
	require.NoError(t, err)

	require.Len(t, result.AnalyzedMedications, 2)
	require.Len(t, result.Interactions, 1)
	require.Len(t, result.RedFlags, 1)
	assert.Equal(t, entities.RedFlag, result.RedFlags[0].Severity)
	assert.Contains(t, result.OverallRiskLevel, "HIGH")
}

func TestAnalyzeVerdictPrecedence(t *testing.T) {
	engine := newTestEngine(fixtureDrugs(), fixtureInteractions())

	// Both a BLACK_FLAG pair and a RED_FLAG pair are present; the verdict
	// must come from the black flag alone.
	result, err := engine.Analyze([]string{"sertraline", "phenelzine", "warfarin", "aspirin"})
	require.NoError(t, err)

	require.Len(t, result.BlackFlags, 1)
	require.Len(t, result.RedFlags, 1)
	assert.Equal(t, RiskCritical, result.OverallRiskLevel)
}

func TestAnalyzeBucketCountsSumToTotal(t *testing.T) {
	engine := newTestEngine(fixtureDrugs(), fixtureInteractions())

	result, err := engine.Analyze([]string{"sertraline", "phenelzine", "warfarin", "aspirin"})
	require.NoError(t, err)

	s := result.RiskSummary
	sum := s.BlackFlags + s.RedFlags + s.OrangeFlags + s.YellowFlags + s.GreenFlags
	assert.Equal(t, s.TotalInteractions, sum)
	assert.Equal(t, len(result.Interactions), s.TotalInteractions)
	assert.Equal(t, len(result.AnalyzedMedications), s.TotalMedications)
}

func TestAnalyzeRecommendationSectionOrder(t *testing.T) {
	engine := newTestEngine(fixtureDrugs(), fixtureInteractions())

	result, err := engine.Analyze([]string{"sertraline", "phenelzine", "warfarin", "aspirin"})
	require.NoError(t, err)

	recs := result.ClinicalRecommendations
	require.NotEmpty(t, recs)

	idxBlack := indexWithPrefix(recs, "CRITICAL:")
	idxRed := indexWithPrefix(recs, "DANGEROUS:")
	idxBBW := indexWithPrefix(recs, "BLACK BOX WARNINGS:")
	idxGeneral := indexWithPrefix(recs, "General Recommendations:")

	require.GreaterOrEqual(t, idxBlack, 0)
	require.Greater(t, idxRed, idxBlack)
	require.Greater(t, idxBBW, idxRed)
	require.Greater(t, idxGeneral, idxBBW)

	// Warfarin carries a black-box warning, so its line must appear.
	assert.True(t, containsSubstring(recs, "Warfarin:"))
}

func TestAnalyzeNoGeneralBlockWithoutSeriousFlags(t *testing.T) {
	interactions := []entities.Interaction{
		{DrugA: "warfarin", DrugB: "aspirin", Severity: entities.YellowFlag},
	}
	engine := newTestEngine(fixtureDrugs(), interactions)

	result, err := engine.Analyze([]string{"warfarin", "aspirin"})
	require.NoError(t, err)

	assert.Equal(t, RiskModerate, result.OverallRiskLevel)
	assert.Equal(t, -1, indexWithPrefix(result.ClinicalRecommendations, "General Recommendations:"))
	// Yellow findings carry no advisory lines of their own.
	assert.Equal(t, -1, indexWithPrefix(result.ClinicalRecommendations, "DANGEROUS:"))
}

func TestAnalyzeReportMetadata(t *testing.T) {
	engine := newTestEngine(fixtureDrugs(), fixtureInteractions())

	first, err := engine.Analyze([]string{"aspirin"})
	require.NoError(t, err)
	second, err := engine.Analyze([]string{"aspirin"})
	require.NoError(t, err)

	assert.NotEmpty(t, first.ReportID)
	assert.NotEqual(t, first.ReportID, second.ReportID)
	assert.False(t, first.GeneratedAt.IsZero())
}

func indexWithPrefix(lines []string, prefix string) int {
	for i, line := range lines {
		if strings.HasPrefix(line, prefix) {
			return i
		}
	}
	return -1
}

func containsSubstring(lines []string, sub string) bool {
	for _, line := range lines {
		if strings.Contains(line, sub) {
			return true
		}
	}
	return false
}
