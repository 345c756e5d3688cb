package db

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("not found")

type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// JobStatuses lists every job status in lifecycle order.
var JobStatuses = []JobStatus{JobPending, JobInProgress, JobCompleted, JobFailed}

func (s JobStatus) Valid() bool {
	switch s {
	case JobPending, JobInProgress, JobCompleted, JobFailed:
		return true
	}
	return false
}

func ParseJobStatus(s string) (JobStatus, error) {
	st := JobStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid job status %q: must be one of pending, in_progress, completed, failed", s)
	}
	return st, nil
}

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	st := ApprovalStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid approval status %q: must be one of pending, approved, rejected", s)
	}
	return st, nil
}

type Job struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Deadline time.Time `json:"deadline"`
	Status   JobStatus `json:"status"`
}

// JobCreate holds the fields accepted when adding a job. An empty Status
// means pending.
type JobCreate struct {
	Name     string
	Deadline time.Time
	Status   JobStatus
}

// JobUpdate changes only the fields that are non-nil.
type JobUpdate struct {
	ID       string
	Name     *string
	Deadline *time.Time
	Status   *JobStatus
}

// JobFilter narrows ListJobs. From and To are inclusive bounds on the
// deadline. Limit <= 0 means no limit.
type JobFilter struct {
	Limit    int
	Offset   int
	From     *time.Time
	To       *time.Time
	Statuses []JobStatus
}

type Approval struct {
	ID      string         `json:"id"`
	Person  string         `json:"person"`
	Request string         `json:"request"`
	Status  ApprovalStatus `json:"status"`
	JobID   *string        `json:"job_id"`
}

type ApprovalCreate struct {
	Person  string
	Request string
	Status  ApprovalStatus
	JobID   *string
}

type ApprovalUpdate struct {
	ID      string
	Person  *string
	Request *string
	Status  *ApprovalStatus
	JobID   *string
}
