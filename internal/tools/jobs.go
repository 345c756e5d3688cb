package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris/switchboard/internal/db"
	"github.com/chris/switchboard/internal/llm"
	"github.com/chris/switchboard/internal/session"
)

const defaultJobsLimit = 10

func jobStatusNames() []string {
	out := make([]string, len(db.JobStatuses))
	for i, st := range db.JobStatuses {
		out[i] = string(st)
	}
	return out
}

func jobTools() []*Def {
	statuses := jobStatusNames()
	return []*Def{
		{
			Name:        "add_job",
			Description: "Add a job with a name and a deadline.",
			Parameters: llm.ObjReq(map[string]any{
				"name":     llm.Prop("string", "Job name"),
				"deadline": llm.Prop("string", "Deadline as YYYY-MM-DD or an RFC 3339 timestamp"),
				"status":   llm.Enum("Initial status (default pending)", statuses...),
			}, "name", "deadline"),
			Fn: addJob,
		},
		{
			Name:        "update_job",
			Description: "Update a job. Only the fields provided are changed.",
			Parameters: llm.ObjReq(map[string]any{
				"id":       llm.Prop("string", "Job ID"),
				"name":     llm.Prop("string", "New name"),
				"deadline": llm.Prop("string", "New deadline as YYYY-MM-DD or an RFC 3339 timestamp"),
				"status":   llm.Enum("New status", statuses...),
			}, "id"),
			Fn: updateJob,
		},
		{
			Name:        "delete_job",
			Description: "Delete a job by ID.",
			Parameters: llm.ObjReq(map[string]any{
				"id": llm.Prop("string", "Job ID"),
			}, "id"),
			Fn: deleteJob,
		},
		{
			Name:        "get_job",
			Description: "Get a single job by ID.",
			Parameters: llm.ObjReq(map[string]any{
				"job_id": llm.Prop("string", "Job ID"),
			}, "job_id"),
			Fn: getJob,
		},
		{
			Name:        "get_jobs",
			Description: "List jobs in creation order, optionally filtered by deadline range and status.",
			Parameters: llm.Obj(map[string]any{
				"limit":    llm.Prop("integer", "Max jobs to return (default 10)"),
				"offset":   llm.Prop("integer", "Jobs to skip (default 0)"),
				"gte_date": llm.Prop("string", "Only jobs due on or after this date"),
				"lte_date": llm.Prop("string", "Only jobs due on or before this date"),
				"status":   llm.ArrayOf(llm.Enum("Job status", statuses...), "Only jobs with one of these statuses"),
			}),
			Fn: getJobs,
		},
	}
}

func jobStatusArg(args Args) (*db.JobStatus, error) {
	raw, ok, err := args.String("status")
	if err != nil || !ok {
		return nil, err
	}
	st, err := db.ParseJobStatus(raw)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func jobNotFound(id string) Result {
	return Retry("Job not found with ID: %s", id)
}

func addJob(_ context.Context, s *session.State, args Args) (Result, error) {
	name, err := args.RequiredString("name")
	if err != nil {
		return Retry("%v", err), nil
	}
	deadline, err := args.RequiredTime("deadline")
	if err != nil {
		return Retry("%v", err), nil
	}
	status, err := jobStatusArg(args)
	if err != nil {
		return Retry("%v", err), nil
	}

	in := db.JobCreate{Name: name, Deadline: deadline}
	if status != nil {
		in.Status = *status
	}
	job, err := s.Store.CreateJob(in)
	if err != nil {
		return Result{}, err
	}
	s.Record("Added job with ID: " + job.ID)
	return Success("Created a new job called: "+job.Name, job), nil
}

func updateJob(_ context.Context, s *session.State, args Args) (Result, error) {
	id, err := args.RequiredString("id")
	if err != nil {
		return Retry("%v", err), nil
	}
	u := db.JobUpdate{ID: id}

	name, ok, err := args.String("name")
	if err != nil {
		return Retry("%v", err), nil
	}
	if ok {
		if name == "" {
			return Retry("name must not be empty"), nil
		}
		u.Name = &name
	}
	if u.Deadline, err = args.Time("deadline"); err != nil {
		return Retry("%v", err), nil
	}
	if u.Status, err = jobStatusArg(args); err != nil {
		return Retry("%v", err), nil
	}

	job, err := s.Store.UpdateJob(u)
	if errors.Is(err, db.ErrNotFound) {
		return jobNotFound(id), nil
	}
	if err != nil {
		return Result{}, err
	}
	s.Record("Updated job with ID: " + job.ID)
	return Success("Updated job with ID: "+job.ID, job), nil
}

func deleteJob(_ context.Context, s *session.State, args Args) (Result, error) {
	id, err := args.RequiredString("id")
	if err != nil {
		return Retry("%v", err), nil
	}
	job, err := s.Store.DeleteJob(id)
	if errors.Is(err, db.ErrNotFound) {
		return jobNotFound(id), nil
	}
	if err != nil {
		return Result{}, err
	}
	s.Record("Deleted job with ID: " + job.ID)
	return Success("Deleted job with ID: "+job.ID, job), nil
}

func getJob(_ context.Context, s *session.State, args Args) (Result, error) {
	id, err := args.RequiredString("job_id")
	if err != nil {
		return Retry("%v", err), nil
	}
	job, err := s.Store.GetJob(id)
	if errors.Is(err, db.ErrNotFound) {
		return jobNotFound(id), nil
	}
	if err != nil {
		return Result{}, err
	}
	s.Record("Retrieved job with ID: " + job.ID)
	return Success("Retrieved job with ID: "+job.ID, job), nil
}

func getJobs(_ context.Context, s *session.State, args Args) (Result, error) {
	var (
		f   db.JobFilter
		err error
	)
	if f.Limit, err = args.Int("limit", defaultJobsLimit); err != nil {
		return Retry("%v", err), nil
	}
	if f.Offset, err = args.Int("offset", 0); err != nil {
		return Retry("%v", err), nil
	}
	if f.Limit < 0 || f.Offset < 0 {
		return Retry("limit and offset must not be negative"), nil
	}
	if f.From, err = args.Time("gte_date"); err != nil {
		return Retry("%v", err), nil
	}
	if f.To, err = args.Time("lte_date"); err != nil {
		return Retry("%v", err), nil
	}
	raw, err := args.Strings("status")
	if err != nil {
		return Retry("%v", err), nil
	}
	for _, r := range raw {
		st, err := db.ParseJobStatus(r)
		if err != nil {
			return Retry("%v", err), nil
		}
		f.Statuses = append(f.Statuses, st)
	}

	total, err := s.Store.CountJobs()
	if err != nil {
		return Result{}, err
	}
	if total == 0 {
		return Success("No jobs found", nil), nil
	}

	jobs, err := s.Store.ListJobs(f)
	if err != nil {
		return Result{}, err
	}
	if jobs == nil {
		jobs = []db.Job{}
	}
	s.Record("Retrieved all jobs")
	return Success(fmt.Sprintf("Found %d jobs", len(jobs)), jobs), nil
}
