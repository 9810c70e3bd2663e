package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"tableflip.dev/intake/pkg/assessment"
)

func loadTestStore(t *testing.T) Persistence {
	t.Helper()
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	return p
}

func TestRecordsEmptyWhenAbsent(t *testing.T) {
	p := loadTestStore(t)
	records := p.Records(context.Background())
	if len(records) != 0 {
		t.Fatalf("expected empty collection, got %d records", len(records))
	}
}

func TestRecordsEmptyWhenCorrupt(t *testing.T) {
	base := t.TempDir()
	if err := os.MkdirAll(base, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(base, KeyAssessments), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt slot: %v", err)
	}
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	if got := p.Records(context.Background()); len(got) != 0 {
		t.Fatalf("corrupt storage should read as empty, got %d records", len(got))
	}
}

func TestUpsertIdempotent(t *testing.T) {
	p := loadTestStore(t)

	rec := assessment.Record{
		ID:        "654321",
		CaseID:    "CASE-1",
		Type:      assessment.TypeFARE,
		Status:    assessment.StatusInProgress,
		CreatedBy: "Dana",
		CreatedOn: "12/05/2025, 10:49:35 AM",
	}

	if _, err := p.Upsert(rec); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	records, err := p.Upsert(rec)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected 1 record after double save, got %d", len(records))
	}
	if records[0].CreatedOn != rec.CreatedOn {
		t.Fatalf("createdOn changed across saves: %q", records[0].CreatedOn)
	}
}

func TestUpsertPrependsNewRecords(t *testing.T) {
	p := loadTestStore(t)

	if _, err := p.Upsert(assessment.Record{ID: "A", Type: assessment.TypeCANS}); err != nil {
		t.Fatalf("upsert A: %v", err)
	}
	records, err := p.Upsert(assessment.Record{ID: "B", Type: assessment.TypeFARE})
	if err != nil {
		t.Fatalf("upsert B: %v", err)
	}

	if records[0].ID != "B" || records[1].ID != "A" {
		t.Fatalf("expected newest first, got %q then %q", records[0].ID, records[1].ID)
	}

	// Updating A must keep its position.
	records, err = p.Upsert(assessment.Record{ID: "A", Type: assessment.TypeCANS, Status: assessment.StatusCompleted})
	if err != nil {
		t.Fatalf("update A: %v", err)
	}
	if records[0].ID != "B" || records[1].ID != "A" {
		t.Fatalf("update moved the record: got %q then %q", records[0].ID, records[1].ID)
	}
}

func TestMergePreservesWriteOnceFields(t *testing.T) {
	existing := assessment.Record{
		ID:          "X",
		Type:        assessment.TypeCANS,
		Status:      assessment.StatusCompleted,
		CreatedBy:   "Alex",
		CreatedOn:   "12/01/2025, 10:00:00 AM",
		SubmittedOn: "12/01/2025, 11:00:00 AM",
	}
	records := []assessment.Record{existing}

	// A later save with Completed status and no submittedOn must not
	// disturb the original submission time.
	incoming := assessment.Record{
		ID:        "X",
		Type:      assessment.TypeCANS,
		Status:    assessment.StatusCompleted,
		CreatedOn: "12/09/2025, 9:00:00 AM",
	}
	records = Merge(records, incoming)

	got := records[0]
	if got.SubmittedOn != existing.SubmittedOn {
		t.Fatalf("submittedOn overwritten: %q", got.SubmittedOn)
	}
	if got.CreatedOn != existing.CreatedOn {
		t.Fatalf("createdOn overwritten: %q", got.CreatedOn)
	}
	if got.CreatedBy != existing.CreatedBy {
		t.Fatalf("createdBy dropped: %q", got.CreatedBy)
	}
}

func TestSlotRoundTrip(t *testing.T) {
	p := loadTestStore(t)

	rec := assessment.Placeholder("fare", "123456")
	if err := p.Durable().Set(KeyDraftHandoff, rec); err != nil {
		t.Fatalf("set handoff: %v", err)
	}

	var got assessment.Record
	if !p.Durable().Get(KeyDraftHandoff, &got) {
		t.Fatalf("expected handoff slot to be readable")
	}
	if got.ID != rec.ID {
		t.Fatalf("expected id %q, got %q", rec.ID, got.ID)
	}

	p.Durable().Delete(KeyDraftHandoff)
	if p.Durable().Get(KeyDraftHandoff, &got) {
		t.Fatalf("expected handoff slot to be gone after delete")
	}
}

func TestSessionSlotIsProcessScoped(t *testing.T) {
	p := loadTestStore(t)

	if err := p.Session().Set(KeyActiveForm, "cans"); err != nil {
		t.Fatalf("set active form: %v", err)
	}
	var form string
	if !p.Session().Get(KeyActiveForm, &form) || form != "cans" {
		t.Fatalf("expected session slot to hold %q, got %q", "cans", form)
	}

	var missing string
	if p.Session().Get("unknown", &missing) {
		t.Fatalf("unexpected value for unknown key")
	}
}
