package assessment

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Type identifies which questionnaire produced a record.
type Type string

const (
	TypeCANS        Type = "CANS"
	TypeFARE        Type = "F.A.R.E"
	TypeResidential Type = "Residential"
)

// Status is the lifecycle state of a record.
type Status string

const (
	StatusInProgress Status = "In-progress"
	StatusCompleted  Status = "Completed"
)

const (
	// CaseIDNone is the sentinel used when a save carries no case id.
	CaseIDNone = "N/A"

	// SubmittedNone is the table placeholder for records that were never
	// submitted. The presence filter treats it the same as empty.
	SubmittedNone = "-"
)

// AllTypes returns the known assessment types in display order.
func AllTypes() []Type {
	return []Type{TypeCANS, TypeFARE, TypeResidential}
}

// Record is the sole persisted entity of the dashboard.
//
// CreatedOn and SubmittedOn are kept as the original strings they were
// written with; several textual formats are accepted, see dateparse.
type Record struct {
	ID          string          `json:"id"`
	CaseID      string          `json:"caseId,omitempty"`
	Type        Type            `json:"type"`
	Status      Status          `json:"status,omitempty"`
	CreatedBy   string          `json:"createdBy,omitempty"`
	CreatedOn   string          `json:"createdOn,omitempty"`
	SubmittedOn string          `json:"submittedOn,omitempty"`
	Overview    json.RawMessage `json:"overview,omitempty"`
	Answers     json.RawMessage `json:"answers,omitempty"`
	Payload     json.RawMessage `json:"data,omitempty"`
}

// Submitted reports whether the record carries a real submission time.
func (r Record) Submitted() bool {
	return r.SubmittedOn != "" && r.SubmittedOn != SubmittedNone
}

// Completed reports whether the record status is Completed, ignoring case.
func (r Record) Completed() bool {
	return strings.EqualFold(string(r.Status), string(StatusCompleted))
}

// Slug returns the form slug used in navigation fragments.
func (t Type) Slug() string {
	s := strings.ToLower(string(t))
	s = strings.ReplaceAll(s, ".", "")
	return strings.ReplaceAll(s, " ", "")
}

// TypeForForm maps a form slug (cans, fare, residential) to its type.
// Unknown slugs fall back to Residential, matching how synthesized
// placeholders classify unrecognized links.
func TypeForForm(form string) Type {
	switch strings.ToLower(strings.TrimSpace(form)) {
	case "cans":
		return TypeCANS
	case "fare":
		return TypeFARE
	default:
		return TypeResidential
	}
}

// NewID mints a record id for the given form. CANS ids are derived from
// the creation instant; the other forms use a random 6-digit number.
func NewID(form string) string {
	if TypeForForm(form) == TypeCANS {
		return fmt.Sprintf("CANS-%d", time.Now().UnixMilli())
	}
	return fmt.Sprintf("%d", 100000+rand.Intn(900000))
}

// Placeholder synthesizes a minimal well-formed record for the requested
// id so a form collaborator never has to handle a missing draft.
func Placeholder(form, id string) Record {
	return Record{
		ID:        id,
		CaseID:    CaseIDNone,
		Type:      TypeForForm(form),
		Status:    StatusInProgress,
		CreatedBy: "User",
		CreatedOn: NowStamp(),
	}
}
