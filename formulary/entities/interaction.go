package entities

// Interaction documents a risk relationship between exactly two drug IDs.
// Storage is asymmetric (DrugA/DrugB) but lookup treats the pair as
// unordered.
type Interaction struct {
	DrugA           string   `json:"drug_a"`
	DrugB           string   `json:"drug_b"`
	Severity        Severity `json:"severity"`
	Mechanism       string   `json:"mechanism"`
	Description     string   `json:"description"`
	ClinicalEffects string   `json:"clinical_effects"`
	Recommendation  string   `json:"recommendation"`
	EvidenceLevel   string   `json:"evidence_level"`
	Source          string   `json:"source"`
}
