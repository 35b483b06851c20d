// Package validation provides input sanitation and dataset quality checks
// for the interactions API.
package validation

import (
	"fmt"
	"strings"

	"github.com/medsafe/interactions-api/formulary/entities"
	"github.com/medsafe/interactions-api/interfaces"
)

const maxInputLength = 100

// Dangerous substrings checked against lowered input. Plain substring
// matching is faster than regex for these and the input is short.
var dangerousPatterns = []string{
	"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
	"eval(", "expression(", "url(", "@import",
	"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
	"--", "/*", "*/", "exec(", "execute(",
	"`", "$(", "${",
	"../", "..\\", "%2e%2e", "file://",
}

// Compile-time check to ensure DataValidatorImpl implements DataValidator
var _ interfaces.DataValidator = (*DataValidatorImpl)(nil)

// DataValidatorImpl implements the interfaces.DataValidator interface
type DataValidatorImpl struct{}

// NewDataValidator creates a new data validator.
func NewDataValidator() interfaces.DataValidator {
	return &DataValidatorImpl{}
}

// ValidateInput rejects user-supplied search terms that are empty, too long
// or carry injection payloads.
func (v *DataValidatorImpl) ValidateInput(input string) error {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return fmt.Errorf("input cannot be empty")
	}

	if len(trimmed) > maxInputLength {
		return fmt.Errorf("input too long: %d characters (max %d)", len(trimmed), maxInputLength)
	}

	lowered := strings.ToLower(trimmed)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowered, pattern) {
			return fmt.Errorf("input contains disallowed sequence")
		}
	}

	return nil
}

// ValidateDrug checks a single drug record for structural problems.
func (v *DataValidatorImpl) ValidateDrug(d *entities.Drug) error {
	if d == nil {
		return fmt.Errorf("drug is nil")
	}

	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("empty drug id")
	}

	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("empty name for drug %s", d.ID)
	}

	if len(d.Name) > 200 {
		return fmt.Errorf("name too long for drug %s: %d characters", d.ID, len(d.Name))
	}

	for _, brand := range d.BrandNames {
		if len(brand) > 200 {
			return fmt.Errorf("brand name too long for drug %s: %d characters", d.ID, len(brand))
		}
	}

	if d.BlackBoxWarning != nil && strings.TrimSpace(d.BlackBoxWarning.Warning) == "" {
		return fmt.Errorf("black box warning without text for drug %s", d.ID)
	}

	return nil
}

// ReportDataQuality scans a loaded dataset and reports every issue found.
// Nothing here rejects data: dangling references never match during
// analysis, so the report exists to make problems visible at startup.
func (v *DataValidatorImpl) ReportDataQuality(drugs []entities.Drug,
	interactions []entities.Interaction) *interfaces.DataQualityReport {

	report := &interfaces.DataQualityReport{}

	seen := make(map[string]int, len(drugs))
	for i := range drugs {
		seen[drugs[i].ID]++
		if len(drugs[i].BrandNames) == 0 {
			report.DrugsWithoutBrands++
		}
		if drugs[i].BlackBoxWarning != nil {
			report.DrugsWithBlackBox++
		}
	}

	for id, count := range seen {
		if count > 1 {
			report.DuplicateDrugIDs = append(report.DuplicateDrugIDs, id)
		}
	}

	for i := range interactions {
		if interactions[i].DrugA == interactions[i].DrugB {
			report.SelfPairs++
		}
		_, okA := seen[interactions[i].DrugA]
		_, okB := seen[interactions[i].DrugB]
		if !okA || !okB {
			report.DanglingReferences = append(report.DanglingReferences,
				interactions[i].DrugA+"/"+interactions[i].DrugB)
		}
	}

	return report
}
