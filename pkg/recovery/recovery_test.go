package recovery

import (
	"context"
	"encoding/json"
	"testing"

	"tableflip.dev/intake/pkg/assessment"
	"tableflip.dev/intake/pkg/store"
)

type testConfig struct{ path string }

func (t testConfig) BasePath() string { return t.path }

func testStore(t *testing.T) store.Persistence {
	t.Helper()
	p, err := store.Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	return p
}

func TestParseFragment(t *testing.T) {
	intent, err := ParseFragment("#assessment/fare/654321")
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	if intent.FormType != "fare" || intent.RecordID != "654321" {
		t.Fatalf("unexpected intent: %+v", intent)
	}

	for _, bad := range []string{"", "assessment", "assessment/cans", "other/cans/1"} {
		if _, err := ParseFragment(bad); err == nil {
			t.Fatalf("ParseFragment(%q) should fail", bad)
		}
	}
}

func TestShareLinkRoundTrip(t *testing.T) {
	rec := assessment.Record{
		ID:        "CANS-1700000000000",
		CaseID:    "900100",
		Type:      assessment.TypeCANS,
		Status:    assessment.StatusInProgress,
		CreatedBy: "Dana",
		CreatedOn: "12/05/2025, 10:49:35 AM",
	}

	intent, err := ParseLink(ShareLink(rec))
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	if intent.FormType != "cans" || intent.RecordID != rec.ID {
		t.Fatalf("unexpected intent: %+v", intent)
	}

	var got assessment.Record
	if err := json.Unmarshal(intent.Inline, &got); err != nil {
		t.Fatalf("decode inline payload: %v", err)
	}
	if got.ID != rec.ID || got.CaseID != rec.CaseID || got.Type != rec.Type || got.CreatedBy != rec.CreatedBy {
		t.Fatalf("inline payload mismatch: %+v", got)
	}
}

func TestResolveInlineBeatsSessionSlot(t *testing.T) {
	p := testStore(t)

	inline := assessment.Record{ID: "X", Type: assessment.TypeFARE, CaseID: "FROM-INLINE"}
	stale := assessment.Record{ID: "X", Type: assessment.TypeFARE, CaseID: "FROM-SESSION"}
	if err := p.Session().Set(store.KeySelectedDraft, stale); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	encoded, err := EncodeData(inline)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	intent := Intent{FormType: "fare", RecordID: "X"}.WithData(encoded)

	rec, src := Resolve(context.Background(), p, intent)
	if src != SourceInline {
		t.Fatalf("expected inline source, got %v", src)
	}
	if rec.CaseID != "FROM-INLINE" {
		t.Fatalf("expected inline record to win, got %q", rec.CaseID)
	}
}

func TestResolveInlineIgnoredOnIDMismatch(t *testing.T) {
	p := testStore(t)

	other := assessment.Record{ID: "OTHER", Type: assessment.TypeCANS}
	encoded, _ := EncodeData(other)
	intent := Intent{FormType: "cans", RecordID: "WANTED"}.WithData(encoded)

	_, src := Resolve(context.Background(), p, intent)
	if src != SourceSynthesized {
		t.Fatalf("mismatched inline payload must not resolve, got %v", src)
	}
}

func TestResolveHandoffIsSingleUse(t *testing.T) {
	p := testStore(t)

	staged := assessment.Record{ID: "654321", Type: assessment.TypeResidential, CaseID: "H"}
	Stage(p, staged)

	intent := Intent{FormType: "residential", RecordID: "654321"}
	rec, src := Resolve(context.Background(), p, intent)
	if src != SourceHandoff {
		t.Fatalf("expected handoff source, got %v", src)
	}
	if rec.CaseID != "H" {
		t.Fatalf("unexpected record: %+v", rec)
	}

	var leftover assessment.Record
	if p.Durable().Get(store.KeyDraftHandoff, &leftover) {
		t.Fatalf("handoff slot should be cleared after consumption")
	}

	// The session copy still serves a same-window reload.
	if _, src := Resolve(context.Background(), p, intent); src != SourceSession {
		t.Fatalf("expected session fallback on second resolve, got %v", src)
	}
}

func TestResolveFallsBackToCollection(t *testing.T) {
	p := testStore(t)

	stored := assessment.Record{ID: "X", Type: assessment.TypeCANS, CaseID: "FROM-COLLECTION", CreatedOn: "2025-12-01"}
	if _, err := p.Upsert(stored); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	rec, src := Resolve(context.Background(), p, Intent{FormType: "cans", RecordID: "X"})
	if src != SourceCollection {
		t.Fatalf("expected collection source, got %v", src)
	}
	if rec.CaseID != "FROM-COLLECTION" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestResolveSynthesizesPlaceholder(t *testing.T) {
	p := testStore(t)

	rec, src := Resolve(context.Background(), p, Intent{FormType: "fare", RecordID: "X"})
	if src != SourceSynthesized {
		t.Fatalf("expected synthesis, got %v", src)
	}
	if rec.ID != "X" || rec.Type != assessment.TypeFARE {
		t.Fatalf("unexpected placeholder: %+v", rec)
	}
	if rec.Status != assessment.StatusInProgress || rec.CaseID != assessment.CaseIDNone {
		t.Fatalf("placeholder defaults wrong: %+v", rec)
	}
	if rec.SubmittedOn != "" {
		t.Fatalf("placeholder must not be submitted: %q", rec.SubmittedOn)
	}
	if rec.CreatedOn == "" {
		t.Fatalf("placeholder needs a createdOn stamp")
	}
}

func TestEnterResumeLeave(t *testing.T) {
	p := testStore(t)

	rec := assessment.Record{ID: "654321", Type: assessment.TypeFARE}
	intent := Intent{FormType: "fare", RecordID: rec.ID}
	Enter(p, intent, rec)

	resumed, ok := Resume(p)
	if !ok {
		t.Fatalf("expected an active form to resume")
	}
	if resumed.FormType != "fare" || resumed.RecordID != "654321" {
		t.Fatalf("unexpected resume intent: %+v", resumed)
	}

	Leave(p)
	if _, ok := Resume(p); ok {
		t.Fatalf("expected no active form after leave")
	}
}
