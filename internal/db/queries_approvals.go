package db

import (
	"database/sql"
	"fmt"
)

const approvalColumns = "id, person, request, status, job_id"

// CreateApproval inserts an approval request. JobID is stored as given and is
// not checked against the jobs table.
func (d *DB) CreateApproval(in ApprovalCreate) (*Approval, error) {
	status := in.Status
	if status == "" {
		status = ApprovalPending
	}
	a := &Approval{
		ID:      prefixedID("approval"),
		Person:  in.Person,
		Request: in.Request,
		Status:  status,
	}
	if in.JobID != nil && *in.JobID != "" {
		jobID := *in.JobID
		a.JobID = &jobID
	}
	_, err := d.conn.Exec(
		"INSERT INTO approvals (id, person, request, status, job_id) VALUES (?, ?, ?, ?, ?)",
		a.ID, a.Person, a.Request, string(a.Status), nullStr(a.JobID),
	)
	if err != nil {
		return nil, fmt.Errorf("creating approval: %w", err)
	}
	return a, nil
}

// GetApproval returns the approval with the given id.
func (d *DB) GetApproval(id string) (*Approval, error) {
	approvals, err := d.scanApprovals("SELECT "+approvalColumns+" FROM approvals WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(approvals) == 0 {
		return nil, fmt.Errorf("approval %s: %w", id, ErrNotFound)
	}
	return &approvals[0], nil
}

// ListApprovals returns every approval in creation order.
func (d *DB) ListApprovals() ([]Approval, error) {
	return d.scanApprovals("SELECT " + approvalColumns + " FROM approvals ORDER BY seq")
}

// UpdateApproval applies the non-nil fields of u. An empty JobID clears the link.
func (d *DB) UpdateApproval(u ApprovalUpdate) (*Approval, error) {
	fields := make(map[string]any)
	if u.Person != nil {
		fields["person"] = *u.Person
	}
	if u.Request != nil {
		fields["request"] = *u.Request
	}
	if u.Status != nil {
		fields["status"] = string(*u.Status)
	}
	if u.JobID != nil {
		fields["job_id"] = nullStr(u.JobID)
	}
	if len(fields) == 0 {
		return d.GetApproval(u.ID)
	}
	if err := d.updateRow("approvals", u.ID, fields); err != nil {
		return nil, err
	}
	return d.GetApproval(u.ID)
}

// DeleteApproval removes an approval and returns it as it was before deletion.
func (d *DB) DeleteApproval(id string) (*Approval, error) {
	a, err := d.GetApproval(id)
	if err != nil {
		return nil, err
	}
	if _, err := d.conn.Exec("DELETE FROM approvals WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("deleting approval %s: %w", id, err)
	}
	return a, nil
}

func (d *DB) scanApprovals(query string, args ...any) ([]Approval, error) {
	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying approvals: %w", err)
	}
	defer rows.Close()
	var approvals []Approval
	for rows.Next() {
		var a Approval
		var status string
		var jobID sql.NullString
		if err := rows.Scan(&a.ID, &a.Person, &a.Request, &status, &jobID); err != nil {
			return nil, fmt.Errorf("scanning approval: %w", err)
		}
		a.Status = ApprovalStatus(status)
		if jobID.Valid {
			a.JobID = &jobID.String
		}
		approvals = append(approvals, a)
	}
	return approvals, rows.Err()
}
