// Package formulary owns the medication knowledge base: an immutable index
// of drugs and their documented pairwise interactions, built once at startup
// from a JSON dataset and shared read-only for the life of the process.
package formulary

import (
	"github.com/medsafe/interactions-api/formulary/entities"
)

// Formulary is the in-memory knowledge base. Drugs and interactions keep
// the dataset order; drugsByID gives O(1) lookup by identifier. Nothing
// mutates a Formulary after Build.
type Formulary struct {
	drugs        []entities.Drug
	interactions []entities.Interaction
	drugsByID    map[string]entities.Drug
}

// Build indexes a parsed dataset into a Formulary.
func Build(ds *Dataset) *Formulary {
	drugsByID := make(map[string]entities.Drug, len(ds.Medications))
	for i := range ds.Medications {
		drugsByID[ds.Medications[i].ID] = ds.Medications[i]
	}

	return &Formulary{
		drugs:        ds.Medications,
		interactions: ds.Interactions,
		drugsByID:    drugsByID,
	}
}

// Drugs returns every drug record in dataset order. The slice is shared and
// must not be mutated by callers.
func (f *Formulary) Drugs() []entities.Drug {
	return f.drugs
}

// Interactions returns the full interaction table in dataset order.
func (f *Formulary) Interactions() []entities.Interaction {
	return f.interactions
}

// DrugByID returns the drug with the given identifier.
func (f *Formulary) DrugByID(id string) (entities.Drug, bool) {
	d, ok := f.drugsByID[id]
	return d, ok
}

// DrugsByID returns the identifier index. The map is shared and must not be
// mutated by callers.
func (f *Formulary) DrugsByID() map[string]entities.Drug {
	return f.drugsByID
}
