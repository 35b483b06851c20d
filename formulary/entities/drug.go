package entities

// Drug is the canonical record for one medication in the formulary.
// The ID is unique within a dataset; name, generic name and brand names are
// matching keys only and may collide across drugs.
type Drug struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	GenericName       string           `json:"generic_name"`
	BrandNames        []string         `json:"brand_names"`
	DrugClass         string           `json:"class"`
	BlackBoxWarning   *BlackBoxWarning `json:"black_box_warning,omitempty"`
	CypMetabolism     []string         `json:"cyp_metabolism"`
	Contraindications []string         `json:"contraindications"`
	SideEffects       []string         `json:"side_effects"`
}

// BlackBoxWarning is the most serious per-drug safety caveat, independent of
// any interaction.
type BlackBoxWarning struct {
	Title   string `json:"title"`
	Warning string `json:"warning"`
}

// CatalogEntry is the summary view of a drug used by the catalog listing.
type CatalogEntry struct {
	Name        string `json:"name"`
	GenericName string `json:"generic_name"`
	DrugClass   string `json:"class"`
}

// Summary returns the catalog view of the drug.
func (d Drug) Summary() CatalogEntry {
	return CatalogEntry{
		Name:        d.Name,
		GenericName: d.GenericName,
		DrugClass:   d.DrugClass,
	}
}
