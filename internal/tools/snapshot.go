package tools

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/chris/switchboard/internal/db"
)

// JobIndex renders every job as a {"<id>": "<name>"} object in creation
// order. It returns "" when there are no jobs.
func JobIndex(store *db.DB) (string, error) {
	jobs, err := store.ListJobs(db.JobFilter{})
	if err != nil {
		return "", fmt.Errorf("listing jobs: %w", err)
	}
	if len(jobs) == 0 {
		return "", nil
	}
	out := "{}"
	for _, j := range jobs {
		if out, err = sjson.Set(out, gjson.Escape(j.ID), j.Name); err != nil {
			return "", fmt.Errorf("rendering job %s: %w", j.ID, err)
		}
	}
	return out, nil
}

// ApprovalIndex renders every approval keyed by id. It returns "" when
// there are no approvals.
func ApprovalIndex(store *db.DB) (string, error) {
	approvals, err := store.ListApprovals()
	if err != nil {
		return "", fmt.Errorf("listing approvals: %w", err)
	}
	if len(approvals) == 0 {
		return "", nil
	}
	out := "{}"
	for _, a := range approvals {
		entry := map[string]any{
			"request": a.Request,
			"job_id":  a.JobID,
			"status":  a.Status,
			"person":  a.Person,
		}
		if out, err = sjson.Set(out, gjson.Escape(a.ID), entry); err != nil {
			return "", fmt.Errorf("rendering approval %s: %w", a.ID, err)
		}
	}
	return out, nil
}
