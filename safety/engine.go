// Package safety implements the medication interaction analysis engine:
// free-text name resolution against the formulary, pairwise interaction
// lookup, severity categorization, and recommendation synthesis. The engine
// holds no mutable state; every call is a pure function of the loaded
// knowledge base and its inputs.
package safety

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/medsafe/interactions-api/formulary/entities"
	"github.com/medsafe/interactions-api/interfaces"
)

// ErrNoMedicationsMatched is returned by Analyze when not a single input
// name resolved to a drug. Individual unresolved names inside a batch are
// tolerated and reported, never treated as errors.
var ErrNoMedicationsMatched = errors.New("no medications matched the requested names")

// Engine performs stateless analysis over the shared knowledge base.
type Engine struct {
	store interfaces.DataStore
}

// NewEngine creates an engine reading from the given data store.
func NewEngine(store interfaces.DataStore) *Engine {
	return &Engine{store: store}
}

// normalizeName trims and case-folds a free-text medication name. Unicode
// folding keeps matching correct for names like "Sinemet CR" vs "SINEMET cr"
// and accented brand names.
func normalizeName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// matchesExact reports whether the normalized query equals the drug's name,
// generic name, or any brand alias.
func matchesExact(d *entities.Drug, query string) bool {
	if cases.Fold().String(d.Name) == query || cases.Fold().String(d.GenericName) == query {
		return true
	}
	for _, brand := range d.BrandNames {
		if cases.Fold().String(brand) == query {
			return true
		}
	}
	return false
}

// matchesPartial reports whether the normalized query is a substring of the
// drug's name, generic name, or any brand alias.
func matchesPartial(d *entities.Drug, query string) bool {
	if strings.Contains(cases.Fold().String(d.Name), query) ||
		strings.Contains(cases.Fold().String(d.GenericName), query) {
		return true
	}
	for _, brand := range d.BrandNames {
		if strings.Contains(cases.Fold().String(brand), query) {
			return true
		}
	}
	return false
}

// FindMedication resolves a free-text name to a drug record. Matching is
// two-pass over the full drug list in dataset order: all drugs are tried for
// an exact match before any substring matching happens, and within each pass
// the first match wins. Both rules are load-bearing for determinism and must
// not be replaced with a best-match heuristic. Empty and whitespace-only
// input never matches.
func (e *Engine) FindMedication(name string) (entities.Drug, bool) {
	query := normalizeName(name)
	if query == "" {
		return entities.Drug{}, false
	}

	drugs := e.store.GetDrugs()

	for i := range drugs {
		if matchesExact(&drugs[i], query) {
			return drugs[i], true
		}
	}

	for i := range drugs {
		if matchesPartial(&drugs[i], query) {
			return drugs[i], true
		}
	}

	return entities.Drug{}, false
}

// findInteractions scans the full interaction table and keeps every record
// whose both endpoints are in the resolved ID set, preserving dataset order.
// A full scan is fine at formulary scale; self-pairs are skipped so an
// interaction of a drug with itself is never reported.
func (e *Engine) findInteractions(ids map[string]struct{}) []entities.Interaction {
	found := []entities.Interaction{}

	for _, interaction := range e.store.GetInteractions() {
		if interaction.DrugA == interaction.DrugB {
			continue
		}
		if _, ok := ids[interaction.DrugA]; !ok {
			continue
		}
		if _, ok := ids[interaction.DrugB]; !ok {
			continue
		}
		found = append(found, interaction)
	}

	return found
}

// Analyze resolves every name independently, looks up all pairwise
// interactions among the resolved drugs, and synthesizes the risk report.
// Unresolved names are dropped from the analysis but echoed back in
// UnmatchedNames; the call fails only when nothing resolves. Duplicate
// resolutions stay in AnalyzedMedications, while interaction lookup runs on
// the deduplicated ID set.
func (e *Engine) Analyze(names []string) (*AnalysisResult, error) {
	var (
		matched   []entities.Drug
		unmatched []string
		ids       = make(map[string]struct{})
	)

	for _, name := range names {
		drug, ok := e.FindMedication(name)
		if !ok {
			unmatched = append(unmatched, name)
			continue
		}
		matched = append(matched, drug)
		ids[drug.ID] = struct{}{}
	}

	if len(matched) == 0 {
		return nil, ErrNoMedicationsMatched
	}

	interactions := e.findInteractions(ids)

	buckets := bucketBySeverity(interactions)
	risk := overallRiskLevel(buckets)
	recommendations := buildRecommendations(matched, buckets)

	blackBoxCount := 0
	for i := range matched {
		if matched[i].BlackBoxWarning != nil {
			blackBoxCount++
		}
	}

	return &AnalysisResult{
		ReportID:            uuid.NewString(),
		GeneratedAt:         time.Now().UTC(),
		AnalyzedMedications: matched,
		UnmatchedNames:      unmatched,
		Interactions:        interactions,
		BlackFlags:          buckets[entities.BlackFlag],
		RedFlags:            buckets[entities.RedFlag],
		OrangeFlags:         buckets[entities.OrangeFlag],
		YellowFlags:         buckets[entities.YellowFlag],
		GreenFlags:          buckets[entities.GreenFlag],
		OverallRiskLevel:    risk,
		RiskSummary: RiskSummary{
			TotalMedications:                len(matched),
			TotalInteractions:               len(interactions),
			BlackFlags:                      len(buckets[entities.BlackFlag]),
			RedFlags:                        len(buckets[entities.RedFlag]),
			OrangeFlags:                     len(buckets[entities.OrangeFlag]),
			YellowFlags:                     len(buckets[entities.YellowFlag]),
			GreenFlags:                      len(buckets[entities.GreenFlag]),
			MedicationsWithBlackBoxWarnings: blackBoxCount,
		},
		ClinicalRecommendations: recommendations,
	}, nil
}

// bucketBySeverity partitions interactions by exact severity tag. Every
// interaction lands in exactly one bucket, so bucket sizes always sum to the
// total (invalid tags are rejected at load time).
func bucketBySeverity(interactions []entities.Interaction) map[entities.Severity][]entities.Interaction {
	buckets := map[entities.Severity][]entities.Interaction{
		entities.BlackFlag:  {},
		entities.RedFlag:    {},
		entities.OrangeFlag: {},
		entities.YellowFlag: {},
		entities.GreenFlag:  {},
	}

	for _, interaction := range interactions {
		buckets[interaction.Severity] = append(buckets[interaction.Severity], interaction)
	}

	return buckets
}

// Overall risk verdicts, keyed by presence of the worst tier. A single
// BLACK_FLAG outranks any number of lower-tier findings.
const (
	RiskCritical     = "CRITICAL - CONTRAINDICATED COMBINATION"
	RiskHigh         = "HIGH - DANGEROUS COMBINATION"
	RiskModerateHigh = "MODERATE-HIGH - MAJOR WARNINGS"
	RiskModerate     = "MODERATE - MONITOR CLOSELY"
	RiskLow          = "LOW - GENERALLY SAFE"
)

// overallRiskLevel walks the precedence ladder top down. GREEN_FLAG findings
// never lift the verdict above the baseline.
func overallRiskLevel(buckets map[entities.Severity][]entities.Interaction) string {
	switch {
	case len(buckets[entities.BlackFlag]) > 0:
		return RiskCritical
	case len(buckets[entities.RedFlag]) > 0:
		return RiskHigh
	case len(buckets[entities.OrangeFlag]) > 0:
		return RiskModerateHigh
	case len(buckets[entities.YellowFlag]) > 0:
		return RiskModerate
	default:
		return RiskLow
	}
}
