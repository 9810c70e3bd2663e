package assessment

// Row returns the table cells for this record.
func (r Record) Row() (string, string, string, string, string, string, string) {
	caseID := r.CaseID
	if caseID == "" {
		caseID = CaseIDNone
	}
	submitted := r.SubmittedOn
	if submitted == "" {
		submitted = SubmittedNone
	}
	return r.ID, caseID, string(r.Type), string(r.Status), r.CreatedOn, r.CreatedBy, submitted
}
