// Package form defines the contract between the dashboard and the
// questionnaire collaborators it hosts. The dashboard never inspects a
// questionnaire's internals; collaborators hand back a SavePayload and
// the dashboard projects it onto the draft record.
package form

import (
	"encoding/json"
	"strings"

	"tableflip.dev/intake/pkg/assessment"
)

// SavePayload is the save envelope a collaborator emits. Zero-valued
// fields mean "leave the draft's value alone"; the projection in Apply
// never erases data the collaborator did not mention.
type SavePayload struct {
	Status         assessment.Status `json:"status,omitempty"`
	CaseID         string            `json:"caseId,omitempty"`
	ContractNumber string            `json:"contract_number,omitempty"`
	CreatedBy      string            `json:"createdBy,omitempty"`
	Overview       json.RawMessage   `json:"overview,omitempty"`
	Answers        json.RawMessage   `json:"answers,omitempty"`
	Payload        json.RawMessage   `json:"data,omitempty"`

	// AutoSaved marks a periodic background save. Auto saves persist
	// exactly like manual ones but must not close the form or trigger
	// a dashboard refresh.
	AutoSaved bool `json:"autoSaved,omitempty"`
}

// Submitting reports whether this save transitions the draft to
// Completed.
func (p SavePayload) Submitting() bool {
	return strings.EqualFold(string(p.Status), string(assessment.StatusCompleted))
}

// Apply projects a save payload onto the draft and returns the record
// to persist. The contract number, when present, becomes the case id;
// a payload with neither keeps whatever the draft had, falling back to
// the sentinel. The submission time is stamped on the transition to
// Completed and never re-stamped after.
func Apply(draft assessment.Record, p SavePayload) assessment.Record {
	rec := draft

	if p.Status != "" {
		rec.Status = p.Status
	} else if rec.Status == "" {
		rec.Status = assessment.StatusInProgress
	}

	switch {
	case p.ContractNumber != "":
		rec.CaseID = p.ContractNumber
	case p.CaseID != "":
		rec.CaseID = p.CaseID
	case rec.CaseID == "":
		rec.CaseID = assessment.CaseIDNone
	}

	if p.CreatedBy != "" {
		rec.CreatedBy = p.CreatedBy
	}
	if rec.CreatedOn == "" {
		rec.CreatedOn = assessment.NowStamp()
	}

	if p.Overview != nil {
		rec.Overview = p.Overview
	}
	if p.Answers != nil {
		rec.Answers = p.Answers
	}
	if p.Payload != nil {
		rec.Payload = p.Payload
	}

	if rec.Completed() && !rec.Submitted() {
		rec.SubmittedOn = assessment.NowStamp()
	}
	if rec.SubmittedOn == "" {
		rec.SubmittedOn = assessment.SubmittedNone
	}

	return rec
}
