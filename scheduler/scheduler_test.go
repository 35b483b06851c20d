package scheduler

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/medsafe/interactions-api/data"
	"github.com/medsafe/interactions-api/formulary/entities"
	"github.com/medsafe/interactions-api/metrics"
)

func TestSchedulerStartStop(t *testing.T) {
	dc := data.NewDataContainer()
	s := NewScheduler(dc)

	if err := s.Start(); err != nil {
		t.Fatalf("Expected scheduler to start, got %v", err)
	}
	s.Stop()
}

func TestSchedulerSeedsGaugesOnStart(t *testing.T) {
	drugs := []entities.Drug{
		{ID: "warfarin", Name: "Warfarin"},
		{ID: "aspirin", Name: "Aspirin"},
	}
	drugsMap := map[string]entities.Drug{
		"warfarin": drugs[0],
		"aspirin":  drugs[1],
	}
	interactions := []entities.Interaction{
		{DrugA: "warfarin", DrugB: "aspirin", Severity: entities.RedFlag},
	}

	dc := data.NewDataContainer()
	dc.SetFormulary(drugs, drugsMap, interactions)

	s := NewScheduler(dc)
	if err := s.Start(); err != nil {
		t.Fatalf("Expected scheduler to start, got %v", err)
	}
	defer s.Stop()

	if got := testutil.ToFloat64(metrics.FormularyDrugs); got != 2 {
		t.Errorf("Expected formulary drugs gauge 2, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.FormularyInteractions); got != 1 {
		t.Errorf("Expected formulary interactions gauge 1, got %v", got)
	}
}
