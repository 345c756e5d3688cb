package db

import "fmt"

const jobColumns = "id, name, deadline, status"

// CreateJob inserts a job with a freshly generated id and returns it.
func (d *DB) CreateJob(in JobCreate) (*Job, error) {
	status := in.Status
	if status == "" {
		status = JobPending
	}
	job := &Job{
		ID:       prefixedID("job"),
		Name:     in.Name,
		Deadline: in.Deadline.UTC(),
		Status:   status,
	}
	_, err := d.conn.Exec(
		"INSERT INTO jobs (id, name, deadline, status) VALUES (?, ?, ?, ?)",
		job.ID, job.Name, formatDeadline(job.Deadline), string(job.Status),
	)
	if err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}
	return job, nil
}

// GetJob returns the job with the given id.
func (d *DB) GetJob(id string) (*Job, error) {
	jobs, err := d.scanJobs("SELECT "+jobColumns+" FROM jobs WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	return &jobs[0], nil
}

// ListJobs returns jobs in creation order, narrowed by the filter.
func (d *DB) ListJobs(f JobFilter) ([]Job, error) {
	query := "SELECT " + jobColumns + " FROM jobs WHERE 1=1"
	var args []any
	if f.From != nil {
		query += " AND deadline >= ?"
		args = append(args, formatDeadline(*f.From))
	}
	if f.To != nil {
		query += " AND deadline <= ?"
		args = append(args, formatDeadline(*f.To))
	}
	if len(f.Statuses) > 0 {
		query += " AND status IN (" + placeholders(len(f.Statuses)) + ")"
		for _, s := range f.Statuses {
			args = append(args, string(s))
		}
	}
	query += " ORDER BY seq"
	if f.Limit > 0 || f.Offset > 0 {
		limit := f.Limit
		if limit <= 0 {
			limit = -1 // sqlite: no limit
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, max(f.Offset, 0))
	}
	return d.scanJobs(query, args...)
}

// CountJobs returns the number of stored jobs.
func (d *DB) CountJobs() (int, error) {
	var n int
	if err := d.conn.QueryRow("SELECT COUNT(*) FROM jobs").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting jobs: %w", err)
	}
	return n, nil
}

// UpdateJob applies the non-nil fields of u and returns the updated job.
func (d *DB) UpdateJob(u JobUpdate) (*Job, error) {
	fields := make(map[string]any)
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.Deadline != nil {
		fields["deadline"] = formatDeadline(*u.Deadline)
	}
	if u.Status != nil {
		fields["status"] = string(*u.Status)
	}
	if len(fields) == 0 {
		return d.GetJob(u.ID)
	}
	if err := d.updateRow("jobs", u.ID, fields); err != nil {
		return nil, err
	}
	return d.GetJob(u.ID)
}

// DeleteJob removes a job and returns it as it was before deletion.
func (d *DB) DeleteJob(id string) (*Job, error) {
	job, err := d.GetJob(id)
	if err != nil {
		return nil, err
	}
	if _, err := d.conn.Exec("DELETE FROM jobs WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("deleting job %s: %w", id, err)
	}
	return job, nil
}

func (d *DB) scanJobs(query string, args ...any) ([]Job, error) {
	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying jobs: %w", err)
	}
	defer rows.Close()
	var jobs []Job
	for rows.Next() {
		var j Job
		var deadline, status string
		if err := rows.Scan(&j.ID, &j.Name, &deadline, &status); err != nil {
			return nil, fmt.Errorf("scanning job: %w", err)
		}
		if j.Deadline, err = parseDeadline(deadline); err != nil {
			return nil, err
		}
		j.Status = JobStatus(status)
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

