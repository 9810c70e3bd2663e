package recovery

import (
	"context"
	"encoding/json"

	"tableflip.dev/intake/pkg/assessment"
	"tableflip.dev/intake/pkg/store"
)

// Source reports which layer of the fallback chain produced the draft.
type Source int

const (
	// SourceInline means the intent carried the record itself.
	SourceInline Source = iota

	// SourceHandoff means the durable single-use handoff slot.
	SourceHandoff

	// SourceSession means the session-scoped selected-draft slot.
	SourceSession

	// SourceCollection means a lookup in the persisted collection.
	SourceCollection

	// SourceSynthesized means nothing matched and a placeholder was
	// minted for the requested id.
	SourceSynthesized
)

func (s Source) String() string {
	switch s {
	case SourceInline:
		return "inline payload"
	case SourceHandoff:
		return "draft handoff"
	case SourceSession:
		return "session"
	case SourceCollection:
		return "collection"
	case SourceSynthesized:
		return "synthesized"
	default:
		return "unknown"
	}
}

// Resolve walks the fallback chain for the intent, first match wins:
// inline payload, durable handoff slot, session selected-draft slot,
// collection lookup, synthesis. Every candidate must carry the
// requested id; malformed candidates count as absent. The durable
// handoff slot is single-use and is cleared once consumed.
func Resolve(ctx context.Context, p store.Persistence, intent Intent) (assessment.Record, Source) {
	if len(intent.Inline) > 0 {
		var rec assessment.Record
		if err := json.Unmarshal(intent.Inline, &rec); err == nil && rec.ID == intent.RecordID {
			return rec, SourceInline
		}
	}

	var rec assessment.Record
	if p.Durable().Get(store.KeyDraftHandoff, &rec) && rec.ID == intent.RecordID {
		p.Durable().Delete(store.KeyDraftHandoff)
		return rec, SourceHandoff
	}

	rec = assessment.Record{}
	if p.Session().Get(store.KeySelectedDraft, &rec) && rec.ID == intent.RecordID {
		return rec, SourceSession
	}

	for _, candidate := range p.Records(ctx) {
		if candidate.ID == intent.RecordID {
			return candidate, SourceCollection
		}
	}

	return assessment.Placeholder(intent.FormType, intent.RecordID), SourceSynthesized
}

// Stage writes the record into both handoff slots synchronously, before
// any navigation happens, so a window opened from this click can
// observe it. Write failures are swallowed: a private-style context
// without storage still works through the inline payload path.
func Stage(p store.Persistence, rec assessment.Record) {
	_ = p.Durable().Set(store.KeyDraftHandoff, rec)
	_ = p.Session().Set(store.KeySelectedDraft, rec)
}

// Enter mirrors the active (form, record) pair into session state so a
// reload of this window recovers the exact editing context.
func Enter(p store.Persistence, intent Intent, rec assessment.Record) {
	_ = p.Session().Set(store.KeyActiveForm, intent.FormType)
	_ = p.Session().Set(store.KeySelectedDraft, rec)
}

// Leave clears the active-form session state when the user returns to
// the dashboard.
func Leave(p store.Persistence) {
	p.Session().Delete(store.KeyActiveForm)
	p.Session().Delete(store.KeySelectedDraft)
}

// Resume reports the intent a reloaded window should re-enter, based on
// session state left behind by Enter. ok is false when no form was
// active.
func Resume(p store.Persistence) (Intent, bool) {
	var form string
	if !p.Session().Get(store.KeyActiveForm, &form) || form == "" {
		return Intent{}, false
	}
	var rec assessment.Record
	if !p.Session().Get(store.KeySelectedDraft, &rec) {
		return Intent{FormType: form}, true
	}
	return Intent{FormType: form, RecordID: rec.ID}, true
}
