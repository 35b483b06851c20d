// Package data provides the shared, thread-safe container for the loaded
// knowledge base. The formulary is stored once at startup behind atomic
// pointers, so request handlers read it concurrently without locking.
package data

import (
	"sync/atomic"
	"time"

	"github.com/medsafe/interactions-api/formulary/entities"
	"github.com/medsafe/interactions-api/interfaces"
	"github.com/medsafe/interactions-api/logging"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// DataContainer holds the formulary data behind atomic pointers. No writer
// exists after the startup load, but the atomic accessors keep the container
// safe even if a future reload path appears.
type DataContainer struct {
	drugs           atomic.Value // []entities.Drug
	drugsMap        atomic.Value // map[string]entities.Drug
	interactions    atomic.Value // []entities.Interaction
	loadedAt        atomic.Value // time.Time
	serverStartTime atomic.Value // time.Time
}

// NewDataContainer creates a container with empty data.
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.drugs.Store(make([]entities.Drug, 0))
	dc.drugsMap.Store(make(map[string]entities.Drug))
	dc.interactions.Store(make([]entities.Interaction, 0))
	dc.loadedAt.Store(time.Time{})
	dc.serverStartTime.Store(time.Time{})
	return dc
}

// Thread-safe getters with type check

// GetDrugs returns every drug record in dataset order.
func (dc *DataContainer) GetDrugs() []entities.Drug {
	if v := dc.drugs.Load(); v != nil {
		if drugs, ok := v.([]entities.Drug); ok {
			return drugs
		}
	}

	logging.Warn("Drug list is empty or invalid")
	return []entities.Drug{}
}

// GetDrugsMap returns the drug index for O(1) ID lookups.
func (dc *DataContainer) GetDrugsMap() map[string]entities.Drug {
	if v := dc.drugsMap.Load(); v != nil {
		if drugsMap, ok := v.(map[string]entities.Drug); ok {
			return drugsMap
		}
	}

	logging.Warn("Drug map is empty or invalid")
	return make(map[string]entities.Drug)
}

// GetInteractions returns the interaction table in dataset order.
func (dc *DataContainer) GetInteractions() []entities.Interaction {
	if v := dc.interactions.Load(); v != nil {
		if interactions, ok := v.([]entities.Interaction); ok {
			return interactions
		}
	}

	logging.Warn("Interaction list is empty or invalid")
	return []entities.Interaction{}
}

// GetLoadedAt returns the timestamp of the dataset load.
func (dc *DataContainer) GetLoadedAt() time.Time {
	if v := dc.loadedAt.Load(); v != nil {
		if loadedAt, ok := v.(time.Time); ok {
			return loadedAt
		}
	}

	logging.Warn("Could not get the dataset load time")
	return time.Time{}
}

// SetServerStartTime sets the server start time.
func (dc *DataContainer) SetServerStartTime(t time.Time) {
	dc.serverStartTime.Store(t)
}

// GetServerStartTime returns the server start time.
func (dc *DataContainer) GetServerStartTime() time.Time {
	if v := dc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

// SetFormulary atomically publishes the loaded knowledge base.
func (dc *DataContainer) SetFormulary(drugs []entities.Drug,
	drugsMap map[string]entities.Drug, interactions []entities.Interaction) {

	dc.drugs.Store(drugs)
	dc.drugsMap.Store(drugsMap)
	dc.interactions.Store(interactions)
	dc.loadedAt.Store(time.Now())
}
