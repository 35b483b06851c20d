package formulary

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/medsafe/interactions-api/formulary/entities"
)

// Dataset mirrors the on-disk JSON layout: two top-level collections.
type Dataset struct {
	Medications  []entities.Drug        `json:"medications"`
	Interactions []entities.Interaction `json:"interactions"`
}

// DatasetError reports a malformed or unreadable source dataset. It is
// fatal at startup and never produced per-request.
type DatasetError struct {
	Path string
	Err  error
}

func (e *DatasetError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("dataset: %v", e.Err)
	}
	return fmt.Sprintf("dataset %s: %v", e.Path, e.Err)
}

func (e *DatasetError) Unwrap() error {
	return e.Err
}

// Parse decodes and checks a dataset from r. Required fields are enforced
// here so bad data fails the process at startup instead of surfacing
// per-request. Referential integrity between interactions and drug IDs is
// deliberately not enforced: dangling references simply never match.
func Parse(r io.Reader) (*Dataset, error) {
	var ds Dataset
	dec := json.NewDecoder(r)
	if err := dec.Decode(&ds); err != nil {
		return nil, &DatasetError{Err: fmt.Errorf("decode failed: %w", err)}
	}

	if ds.Medications == nil {
		return nil, &DatasetError{Err: fmt.Errorf("missing medications collection")}
	}
	if ds.Interactions == nil {
		return nil, &DatasetError{Err: fmt.Errorf("missing interactions collection")}
	}

	for i := range ds.Medications {
		if err := checkDrug(&ds.Medications[i]); err != nil {
			return nil, &DatasetError{Err: fmt.Errorf("medication %d: %w", i, err)}
		}
	}
	for i := range ds.Interactions {
		if err := checkInteraction(&ds.Interactions[i]); err != nil {
			return nil, &DatasetError{Err: fmt.Errorf("interaction %d: %w", i, err)}
		}
	}

	return &ds, nil
}

// LoadFile reads, parses and indexes the dataset at path.
func LoadFile(path string) (*Formulary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &DatasetError{Path: path, Err: err}
	}
	defer file.Close()

	ds, err := Parse(file)
	if err != nil {
		var de *DatasetError
		if errors.As(err, &de) {
			de.Path = path
			return nil, de
		}
		return nil, &DatasetError{Path: path, Err: err}
	}

	return Build(ds), nil
}

func checkDrug(d *entities.Drug) error {
	if d.ID == "" {
		return fmt.Errorf("missing id")
	}
	if d.Name == "" {
		return fmt.Errorf("missing name for id %q", d.ID)
	}
	return nil
}

func checkInteraction(in *entities.Interaction) error {
	if in.DrugA == "" || in.DrugB == "" {
		return fmt.Errorf("missing drug reference")
	}
	// An unknown severity tag would count in the interaction total but land
	// in no bucket, so it is rejected up front.
	if !in.Severity.Valid() {
		return fmt.Errorf("invalid severity %q for pair %s/%s", in.Severity, in.DrugA, in.DrugB)
	}
	return nil
}
