// Package interfaces defines core abstractions for the interactions API
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"time"

	"github.com/medsafe/interactions-api/formulary/entities"
)

// DataQualityReport summarizes issues found in a loaded dataset. The load
// itself stays forgiving; the report only makes bad data visible.
type DataQualityReport struct {
	DuplicateDrugIDs   []string // IDs appearing more than once in medications
	DanglingReferences []string // "drug_a/drug_b" pairs referencing unknown IDs
	SelfPairs          int      // interactions where drug_a == drug_b
	DrugsWithoutBrands int      // drugs with an empty brand-name list
	DrugsWithBlackBox  int      // drugs carrying a black-box warning
}

// DataStore is the contract for the shared knowledge-base container.
// The formulary is set once at startup and read concurrently afterwards.
type DataStore interface {
	GetDrugs() []entities.Drug
	GetDrugsMap() map[string]entities.Drug
	GetInteractions() []entities.Interaction
	GetLoadedAt() time.Time
	GetServerStartTime() time.Time

	SetFormulary(drugs []entities.Drug, drugsMap map[string]entities.Drug,
		interactions []entities.Interaction)
	SetServerStartTime(t time.Time)
}

// DataValidator is the contract for input sanitation and dataset quality
// checks.
type DataValidator interface {
	// ValidateInput rejects user-supplied search terms that are too long or
	// carry injection payloads.
	ValidateInput(input string) error

	// ValidateDrug checks a single drug record for structural problems.
	ValidateDrug(d *entities.Drug) error

	// ReportDataQuality scans a loaded dataset and reports every issue found.
	ReportDataQuality(drugs []entities.Drug, interactions []entities.Interaction) *DataQualityReport
}

// HealthChecker reports system health derived from data availability.
type HealthChecker interface {
	HealthCheck() (status string, data map[string]any, httpStatus int)
}

// Scheduler manages background monitoring jobs.
type Scheduler interface {
	Start() error
	Stop()
}
