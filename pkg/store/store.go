package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/intake/pkg/assessment"
)

// Storage key names. KeyAssessments holds the JSON array of every
// record; KeyDraftHandoff is the single-use durable slot used to hand a
// draft to a freshly opened window; the session keys live only as long
// as one process.
const (
	KeyAssessments   = "assessments"
	KeyDraftHandoff  = "currentAssessmentDraft"
	KeySelectedDraft = "selectedDraft"
	KeyActiveForm    = "activeForm"
)

// Persistence is the persistence contract for assessment records and
// the draft handoff slots.
type Persistence interface {
	// Records reads the durable collection. Absent, corrupt, or empty
	// storage yields an empty slice.
	Records(ctx context.Context) []assessment.Record

	// Upsert merges the record into the durable collection by id and
	// writes the whole collection back in a single call. It returns the
	// updated collection so the caller's in-memory view changes in the
	// same step as the durable write.
	Upsert(rec assessment.Record) ([]assessment.Record, error)

	// Durable exposes the durable slot surface (handoff key).
	Durable() Slot

	// Session exposes the process-scoped slot surface.
	Session() Slot

	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	d := diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return nil },
		CacheSizeMax: 1024 * 1024, // 1MB
	})
	return &persistence{
		durable:  NewDiskSlot(d),
		session:  NewMemorySlot(),
		basePath: basePath,
	}, nil
}

type persistence struct {
	durable  Slot
	session  Slot
	basePath string
}

func (p *persistence) Records(_ context.Context) []assessment.Record {
	var records []assessment.Record
	if !p.durable.Get(KeyAssessments, &records) {
		return []assessment.Record{}
	}
	if records == nil {
		return []assessment.Record{}
	}
	return records
}

func (p *persistence) Upsert(rec assessment.Record) ([]assessment.Record, error) {
	if rec.ID == "" {
		return nil, errors.New("store: record id required")
	}

	records := p.Records(context.Background())
	records = Merge(records, rec)

	if err := p.durable.Set(KeyAssessments, records); err != nil {
		return nil, fmt.Errorf("store: write assessments: %w", err)
	}
	return records, nil
}

func (p *persistence) Durable() Slot { return p.durable }
func (p *persistence) Session() Slot { return p.session }

// Merge applies one record to the collection: an existing record with
// the same id is replaced in place, a new one is prepended. The
// write-once fields are replayed from the stored record, never from the
// incoming payload: createdOn and createdBy whenever the incoming
// record omits them, submittedOn whenever the stored record already has
// one set.
func Merge(records []assessment.Record, rec assessment.Record) []assessment.Record {
	for i, existing := range records {
		if existing.ID != rec.ID {
			continue
		}
		if existing.CreatedOn != "" {
			rec.CreatedOn = existing.CreatedOn
		}
		if rec.CreatedBy == "" {
			rec.CreatedBy = existing.CreatedBy
		}
		if existing.Submitted() {
			rec.SubmittedOn = existing.SubmittedOn
		}
		records[i] = rec
		return records
	}
	return append([]assessment.Record{rec}, records...)
}

func ensureBasePath(basePath string) error {
	if basePath == "" {
		return errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return fmt.Errorf("store: ensure base path: %w", err)
	}
	return nil
}
