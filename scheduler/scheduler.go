// Package scheduler runs background monitoring jobs for the interactions
// API: periodic formulary stats snapshots, metric gauge refreshes, and a
// staleness watch over the load-once dataset.
package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"

	"github.com/medsafe/interactions-api/interfaces"
	"github.com/medsafe/interactions-api/logging"
	"github.com/medsafe/interactions-api/metrics"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles monitoring jobs using dependency injection.
type Scheduler struct {
	dataStore interfaces.DataStore
	scheduler *gocron.Scheduler
}

// NewScheduler creates a new scheduler instance with injected dependencies.
func NewScheduler(dataStore interfaces.DataStore) *Scheduler {
	return &Scheduler{
		dataStore: dataStore,
		scheduler: gocron.NewScheduler(time.Local),
	}
}

// Start registers the monitoring jobs and begins running them.
func (s *Scheduler) Start() error {
	// Immediate gauge seed so /metrics is meaningful before the first tick
	s.refreshGauges()

	if _, err := s.scheduler.Every(15).Minutes().Do(s.refreshGauges); err != nil {
		logging.Error("Failed to schedule gauge refresh", "error", err)
		return err
	}

	if _, err := s.scheduler.Every(6).Hours().Do(s.logSnapshot); err != nil {
		logging.Error("Failed to schedule stats snapshot", "error", err)
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// refreshGauges publishes formulary sizes to Prometheus.
func (s *Scheduler) refreshGauges() {
	metrics.FormularyDrugs.Set(float64(len(s.dataStore.GetDrugs())))
	metrics.FormularyInteractions.Set(float64(len(s.dataStore.GetInteractions())))
}

// logSnapshot records the formulary state for operators.
func (s *Scheduler) logSnapshot() {
	loadedAt := s.dataStore.GetLoadedAt()
	logging.Info("Formulary snapshot",
		"medications", len(s.dataStore.GetDrugs()),
		"interactions", len(s.dataStore.GetInteractions()),
		"loaded_at", loadedAt.Format(time.RFC3339),
		"data_age_hours", int(time.Since(loadedAt).Hours()),
	)
}
