// Package handlers provides HTTP request handlers for the interactions API
// endpoints: medication safety analysis, catalog listing, drug detail,
// interaction table and health checks, with input validation and JSON
// response formatting.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/medsafe/interactions-api/data"
	"github.com/medsafe/interactions-api/formulary/entities"
	"github.com/medsafe/interactions-api/interfaces"
	"github.com/medsafe/interactions-api/logging"
	"github.com/medsafe/interactions-api/metrics"
	"github.com/medsafe/interactions-api/safety"
)

const apiVersion = "1.0.0"

// CheckRequest is the body of POST /api/check. Patient fields are accepted
// for forward compatibility but do not influence the analysis.
type CheckRequest struct {
	Medications       []string `json:"medications"`
	PatientAge        *int     `json:"patient_age,omitempty"`
	PatientConditions []string `json:"patient_conditions,omitempty"`
}

// RespondWithJSON writes a JSON response.
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	w.Write(body)
}

// RespondWithError writes a JSON error response.
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]interface{}{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	})
}

// ServiceInfo returns the root service descriptor.
func ServiceInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"service": "Medication Safety Checker",
			"status":  "operational",
			"version": apiVersion,
			"capabilities": []string{
				"Drug-drug interaction detection",
				"Black box warning identification",
				"Severity-based risk assessment",
				"Clinical recommendations",
			},
		})
	}
}

// CheckMedications analyzes a medication list for interaction risks.
func CheckMedications(engine *safety.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CheckRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		result, err := engine.Analyze(req.Medications)
		if err != nil {
			if errors.Is(err, safety.ErrNoMedicationsMatched) {
				RespondWithError(w, http.StatusNotFound, "No medications found in database")
				return
			}
			logging.Error("Analysis failed", "error", err)
			RespondWithError(w, http.StatusInternalServerError, "Analysis failed")
			return
		}

		metrics.AnalysesTotal.WithLabelValues(result.OverallRiskLevel).Inc()
		metrics.InteractionsFoundTotal.Add(float64(result.RiskSummary.TotalInteractions))

		RespondWithJSON(w, http.StatusOK, result)
	}
}

// ListMedications returns the catalog summary of every drug.
func ListMedications(dataContainer *data.DataContainer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		drugs := dataContainer.GetDrugs()

		catalog := make([]entities.CatalogEntry, 0, len(drugs))
		for i := range drugs {
			catalog = append(catalog, drugs[i].Summary())
		}

		RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"medications": catalog,
		})
	}
}

// ServePagedMedications returns paginated full drug records.
func ServePagedMedications(dataContainer *data.DataContainer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pageNumber := chi.URLParam(r, "pageNumber")
		page, err := strconv.Atoi(pageNumber)
		if err != nil || page < 1 {
			logging.Warn("Unusual user input", "pageNumber", pageNumber)
			RespondWithError(w, http.StatusBadRequest, "Invalid page number")
			return
		}

		drugs := dataContainer.GetDrugs()
		pageSize := 10
		start := (page - 1) * pageSize
		end := start + pageSize

		if start >= len(drugs) {
			RespondWithError(w, http.StatusNotFound, "Page not found")
			return
		}

		if end > len(drugs) {
			end = len(drugs)
		}

		totalItems := len(drugs)
		maxPage := (totalItems + pageSize - 1) / pageSize

		RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"data":       drugs[start:end],
			"page":       page,
			"pageSize":   pageSize,
			"totalItems": totalItems,
			"maxPage":    maxPage,
		})
	}
}

// GetMedication returns the full record of one drug, resolved by name using
// the engine's matching rules.
func GetMedication(engine *safety.Engine, validator interfaces.DataValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if name == "" {
			RespondWithError(w, http.StatusBadRequest, "Missing medication name")
			return
		}

		if err := validator.ValidateInput(name); err != nil {
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		drug, ok := engine.FindMedication(name)
		if !ok {
			RespondWithError(w, http.StatusNotFound, "Medication not found")
			return
		}

		RespondWithJSON(w, http.StatusOK, drug)
	}
}

// ListInteractions returns the full interaction table in dataset order.
func ListInteractions(dataContainer *data.DataContainer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"interactions": dataContainer.GetInteractions(),
		})
	}
}

// HealthCheck returns server health information.
func HealthCheck(checker interfaces.HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, details, httpStatus := checker.HealthCheck()

		response := map[string]interface{}{
			"status":      status,
			"api_version": apiVersion,
		}
		for k, v := range details {
			response[k] = v
		}

		RespondWithJSON(w, httpStatus, response)
	}
}
