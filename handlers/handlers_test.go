package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/medsafe/interactions-api/data"
	"github.com/medsafe/interactions-api/formulary/entities"
	"github.com/medsafe/interactions-api/health"
	"github.com/medsafe/interactions-api/safety"
	"github.com/medsafe/interactions-api/validation"
)

func fixtureContainer() *data.DataContainer {
	drugs := []entities.Drug{
		{
			ID:          "warfarin",
			Name:        "Warfarin",
			GenericName: "warfarin sodium",
			BrandNames:  []string{"Coumadin"},
			DrugClass:   "Anticoagulant",
			BlackBoxWarning: &entities.BlackBoxWarning{
				Title:   "Bleeding risk",
				Warning: "Warfarin can cause major or fatal bleeding.",
			},
		},
		{ID: "aspirin", Name: "Aspirin", GenericName: "acetylsalicylic acid",
			BrandNames: []string{"Bayer"}, DrugClass: "NSAID"},
		{ID: "ibuprofen", Name: "Ibuprofen", BrandNames: []string{"Advil"}, DrugClass: "NSAID"},
		{ID: "sertraline", Name: "Sertraline", BrandNames: []string{"Zoloft"}, DrugClass: "SSRI"},
		{ID: "lisinopril", Name: "Lisinopril", DrugClass: "ACE inhibitor"},
		{ID: "metformin", Name: "Metformin", DrugClass: "Biguanide"},
		{ID: "simvastatin", Name: "Simvastatin", DrugClass: "Statin"},
		{ID: "tramadol", Name: "Tramadol", DrugClass: "Opioid"},
		{ID: "phenelzine", Name: "Phenelzine", DrugClass: "MAOI"},
		{ID: "clarithromycin", Name: "Clarithromycin", DrugClass: "Macrolide"},
		{ID: "amoxicillin", Name: "Amoxicillin", DrugClass: "Penicillin"},
	}
	drugsMap := make(map[string]entities.Drug, len(drugs))
	for i := range drugs {
		drugsMap[drugs[i].ID] = drugs[i]
	}
	interactions := []entities.Interaction{
		{DrugA: "warfarin", DrugB: "aspirin", Severity: entities.RedFlag,
			Recommendation: "Avoid combination; monitor INR closely."},
	}

	dc := data.NewDataContainer()
	dc.SetFormulary(drugs, drugsMap, interactions)
	return dc
}

func newTestRouter() *chi.Mux {
	dc := fixtureContainer()
	engine := safety.NewEngine(dc)
	validator := validation.NewDataValidator()
	checker := health.NewHealthChecker(dc)

	router := chi.NewRouter()
	router.Get("/", ServiceInfo())
	router.Get("/health", HealthCheck(checker))
	router.Post("/api/check", CheckMedications(engine))
	router.Get("/api/medications", ListMedications(dc))
	router.Get("/api/medications/{pageNumber}", ServePagedMedications(dc))
	router.Get("/api/medication/{name}", GetMedication(engine, validator))
	router.Get("/api/interactions", ListInteractions(dc))
	return router
}

func doRequest(t *testing.T, router *chi.Mux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var payload map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	return payload
}

func TestServiceInfo(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/", "")

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Expected JSON content type, got %s", ct)
	}

	payload := decodeBody(t, rec)
	if payload["status"] != "operational" {
		t.Errorf("Expected operational status, got %v", payload["status"])
	}
	if payload["version"] != apiVersion {
		t.Errorf("Expected version %s, got %v", apiVersion, payload["version"])
	}
}

func TestHealthCheckEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/health", "")

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	payload := decodeBody(t, rec)
	if payload["status"] != "healthy" {
		t.Errorf("Expected healthy, got %v", payload["status"])
	}
	if payload["medications"].(float64) != 11 {
		t.Errorf("Expected 11 medications, got %v", payload["medications"])
	}
}

func TestCheckMedications(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/api/check",
		`{"medications": ["Coumadin", "aspirin"]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	payload := decodeBody(t, rec)

	analyzed := payload["analyzed_medications"].([]interface{})
	if len(analyzed) != 2 {
		t.Errorf("Expected 2 analyzed medications, got %d", len(analyzed))
	}

	interactions := payload["interactions"].([]interface{})
	if len(interactions) != 1 {
		t.Errorf("Expected 1 interaction, got %d", len(interactions))
	}

	risk := payload["overall_risk_level"].(string)
	if !strings.Contains(risk, "HIGH") {
		t.Errorf("Expected HIGH risk verdict, got %s", risk)
	}

	if payload["report_id"] == "" {
		t.Error("Expected a report id")
	}
}

func TestCheckMedicationsIgnoresPatientFields(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/api/check",
		`{"medications": ["aspirin"], "patient_age": 70, "patient_conditions": ["CKD"]}`)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
}

func TestCheckMedicationsNoMatches(t *testing.T) {
	router := newTestRouter()

	cases := map[string]string{
		"unknown names": `{"medications": ["xyzzy", "plugh"]}`,
		"empty list":    `{"medications": []}`,
		"missing field": `{}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/api/check", body)

			if rec.Code != http.StatusNotFound {
				t.Errorf("Expected status 404, got %d", rec.Code)
			}

			payload := decodeBody(t, rec)
			if payload["message"] != "No medications found in database" {
				t.Errorf("Unexpected message: %v", payload["message"])
			}
		})
	}
}

func TestCheckMedicationsBadBody(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/api/check", "{not json")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestListMedications(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/api/medications", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	payload := decodeBody(t, rec)
	catalog := payload["medications"].([]interface{})
	if len(catalog) != 11 {
		t.Errorf("Expected 11 catalog entries, got %d", len(catalog))
	}

	first := catalog[0].(map[string]interface{})
	if first["id"] != "warfarin" {
		t.Errorf("Expected dataset order, got first id %v", first["id"])
	}
	if _, present := first["contraindications"]; present {
		t.Error("Catalog entries should not carry full drug records")
	}
}

func TestServePagedMedications(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/api/medications/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	payload := decodeBody(t, rec)
	page := payload["data"].([]interface{})
	if len(page) != 10 {
		t.Errorf("Expected a full page of 10, got %d", len(page))
	}
	if payload["maxPage"].(float64) != 2 {
		t.Errorf("Expected maxPage 2, got %v", payload["maxPage"])
	}

	rec = doRequest(t, router, http.MethodGet, "/api/medications/2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	payload = decodeBody(t, rec)
	page = payload["data"].([]interface{})
	if len(page) != 1 {
		t.Errorf("Expected a trailing page of 1, got %d", len(page))
	}
}

func TestServePagedMedicationsInvalid(t *testing.T) {
	router := newTestRouter()

	for name, path := range map[string]string{
		"not a number": "/api/medications/abc",
		"zero":         "/api/medications/0",
		"negative":     "/api/medications/-1",
	} {
		t.Run(name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodGet, path, "")
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", rec.Code)
			}
		})
	}

	rec := doRequest(t, router, http.MethodGet, "/api/medications/99", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for page past the end, got %d", rec.Code)
	}
}

func TestGetMedication(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/api/medication/Coumadin", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	payload := decodeBody(t, rec)
	if payload["id"] != "warfarin" {
		t.Errorf("Expected brand name to resolve to warfarin, got %v", payload["id"])
	}
	if payload["black_box_warning"] == nil {
		t.Error("Expected black box warning in full record")
	}
}

func TestGetMedicationNotFound(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/api/medication/xyzzy", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestGetMedicationRejectsDangerousInput(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/api/medication/$(reboot)", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestListInteractions(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/api/interactions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	payload := decodeBody(t, rec)
	interactions := payload["interactions"].([]interface{})
	if len(interactions) != 1 {
		t.Errorf("Expected 1 interaction, got %d", len(interactions))
	}

	first := interactions[0].(map[string]interface{})
	if first["severity"] != "RED_FLAG" {
		t.Errorf("Expected RED_FLAG severity, got %v", first["severity"])
	}
}
