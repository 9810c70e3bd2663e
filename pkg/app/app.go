package app

import (
	"context"
	"errors"

	"tableflip.dev/intake/pkg/assessment"
	"tableflip.dev/intake/pkg/form"
	"tableflip.dev/intake/pkg/query"
	"tableflip.dev/intake/pkg/recovery"
	"tableflip.dev/intake/pkg/store"
)

// Service provides high-level operations over the assessment
// collection. It wraps persistence, querying and draft handoff so the
// CLI and the terminal dashboard can share logic.
type Service struct {
	Persistence store.Persistence
}

var errNoPersistence = errors.New("app: no persistence configured")

// Records returns the full collection, newest first.
func (s *Service) Records(ctx context.Context) ([]assessment.Record, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Records(ctx), nil
}

// View evaluates the dashboard query over the collection.
func (s *Service) View(ctx context.Context, params query.Params) (query.Result, error) {
	if s.Persistence == nil {
		return query.Result{}, errNoPersistence
	}
	return query.View(s.Persistence.Records(ctx), params), nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// Create mints a fresh draft for the form and stages it for handoff, so
// the record survives the hop into the questionnaire even across
// processes.
func (s *Service) Create(form string) (assessment.Record, recovery.Intent, error) {
	if s.Persistence == nil {
		return assessment.Record{}, recovery.Intent{}, errNoPersistence
	}
	rec := assessment.Placeholder(form, assessment.NewID(form))
	recovery.Stage(s.Persistence, rec)
	intent := recovery.Intent{FormType: form, RecordID: rec.ID}
	return rec, intent, nil
}

// Open resolves a deep link into the record it names, staging session
// state so a reload of this process recovers the same editing context.
func (s *Service) Open(ctx context.Context, link string) (assessment.Record, recovery.Intent, error) {
	if s.Persistence == nil {
		return assessment.Record{}, recovery.Intent{}, errNoPersistence
	}
	intent, err := recovery.ParseLink(link)
	if err != nil {
		return assessment.Record{}, recovery.Intent{}, err
	}
	rec, _ := recovery.Resolve(ctx, s.Persistence, intent)
	recovery.Enter(s.Persistence, intent, rec)
	return rec, intent, nil
}

// OpenRecord stages an existing record and returns the intent a new
// window would follow to edit it.
func (s *Service) OpenRecord(rec assessment.Record) (recovery.Intent, error) {
	if s.Persistence == nil {
		return recovery.Intent{}, errNoPersistence
	}
	recovery.Stage(s.Persistence, rec)
	intent := recovery.Intent{FormType: rec.Type.Slug(), RecordID: rec.ID}
	recovery.Enter(s.Persistence, intent, rec)
	return intent, nil
}

// Save projects a collaborator payload onto the draft, persists it and
// refreshes the session mirror. It returns the stored record.
func (s *Service) Save(ctx context.Context, draft assessment.Record, p form.SavePayload) (assessment.Record, error) {
	if s.Persistence == nil {
		return assessment.Record{}, errNoPersistence
	}
	rec := form.Apply(draft, p)
	if _, err := s.Persistence.Upsert(rec); err != nil {
		return assessment.Record{}, err
	}
	intent := recovery.Intent{FormType: rec.Type.Slug(), RecordID: rec.ID}
	recovery.Enter(s.Persistence, intent, rec)
	return rec, nil
}

// Close clears the active editing context when the user returns to the
// dashboard.
func (s *Service) Close() {
	if s.Persistence == nil {
		return
	}
	recovery.Leave(s.Persistence)
}

// Resume reports the editing context a restarted process should
// re-enter, if any.
func (s *Service) Resume() (recovery.Intent, bool) {
	if s.Persistence == nil {
		return recovery.Intent{}, false
	}
	return recovery.Resume(s.Persistence)
}
