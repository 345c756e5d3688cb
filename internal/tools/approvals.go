package tools

import (
	"context"
	"errors"

	"github.com/chris/switchboard/internal/db"
	"github.com/chris/switchboard/internal/llm"
	"github.com/chris/switchboard/internal/session"
)

var approvalStatuses = []string{
	string(db.ApprovalPending),
	string(db.ApprovalApproved),
	string(db.ApprovalRejected),
}

func approvalTools() []*Def {
	return []*Def{
		{
			Name:        "add_approval",
			Description: "Record a request that needs someone's approval, optionally linked to a job.",
			Parameters: llm.ObjReq(map[string]any{
				"person":  llm.Prop("string", "Who must approve"),
				"request": llm.Prop("string", "What is being requested"),
				"status":  llm.Enum("Initial status (default pending)", approvalStatuses...),
				"job_id":  llm.Prop("string", "Related job ID"),
			}, "person", "request"),
			Fn: addApproval,
		},
		{
			Name:        "update_approval",
			Description: "Update an approval. Only the fields provided are changed; an empty job_id unlinks the job.",
			Parameters: llm.ObjReq(map[string]any{
				"id":      llm.Prop("string", "Approval ID"),
				"person":  llm.Prop("string", "Who must approve"),
				"request": llm.Prop("string", "What is being requested"),
				"status":  llm.Enum("New status", approvalStatuses...),
				"job_id":  llm.Prop("string", "Related job ID"),
			}, "id"),
			Fn: updateApproval,
		},
		{
			Name:        "delete_approval",
			Description: "Delete an approval by ID.",
			Parameters: llm.ObjReq(map[string]any{
				"id": llm.Prop("string", "Approval ID"),
			}, "id"),
			Fn: deleteApproval,
		},
		{
			Name:        "get_approval",
			Description: "Get a single approval by ID.",
			Parameters: llm.ObjReq(map[string]any{
				"approval_id": llm.Prop("string", "Approval ID"),
			}, "approval_id"),
			Fn: getApproval,
		},
	}
}

func approvalStatusArg(args Args) (*db.ApprovalStatus, error) {
	raw, ok, err := args.String("status")
	if err != nil || !ok {
		return nil, err
	}
	st, err := db.ParseApprovalStatus(raw)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// optionalString returns a pointer to key's value, or nil when unset.
func optionalString(args Args, key string) (*string, error) {
	v, ok, err := args.String(key)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

func approvalNotFound(id string) Result {
	return Retry("Approval not found with ID: %s", id)
}

func addApproval(_ context.Context, s *session.State, args Args) (Result, error) {
	person, err := args.RequiredString("person")
	if err != nil {
		return Retry("%v", err), nil
	}
	request, err := args.RequiredString("request")
	if err != nil {
		return Retry("%v", err), nil
	}
	in := db.ApprovalCreate{Person: person, Request: request}
	status, err := approvalStatusArg(args)
	if err != nil {
		return Retry("%v", err), nil
	}
	if status != nil {
		in.Status = *status
	}
	if in.JobID, err = optionalString(args, "job_id"); err != nil {
		return Retry("%v", err), nil
	}

	a, err := s.Store.CreateApproval(in)
	if err != nil {
		return Result{}, err
	}
	s.Record("Added approval with ID: " + a.ID)
	return Success("Created a new approval request for: "+a.Person, a), nil
}

func updateApproval(_ context.Context, s *session.State, args Args) (Result, error) {
	id, err := args.RequiredString("id")
	if err != nil {
		return Retry("%v", err), nil
	}
	u := db.ApprovalUpdate{ID: id}
	if u.Person, err = optionalString(args, "person"); err != nil {
		return Retry("%v", err), nil
	}
	if u.Request, err = optionalString(args, "request"); err != nil {
		return Retry("%v", err), nil
	}
	if u.Status, err = approvalStatusArg(args); err != nil {
		return Retry("%v", err), nil
	}
	if u.JobID, err = optionalString(args, "job_id"); err != nil {
		return Retry("%v", err), nil
	}
	if (u.Person != nil && *u.Person == "") || (u.Request != nil && *u.Request == "") {
		return Retry("person and request must not be empty"), nil
	}

	a, err := s.Store.UpdateApproval(u)
	if errors.Is(err, db.ErrNotFound) {
		return approvalNotFound(id), nil
	}
	if err != nil {
		return Result{}, err
	}
	s.Record("Updated approval with ID: " + a.ID)
	return Success("Updated approval with ID: "+a.ID, a), nil
}

func deleteApproval(_ context.Context, s *session.State, args Args) (Result, error) {
	id, err := args.RequiredString("id")
	if err != nil {
		return Retry("%v", err), nil
	}
	a, err := s.Store.DeleteApproval(id)
	if errors.Is(err, db.ErrNotFound) {
		return approvalNotFound(id), nil
	}
	if err != nil {
		return Result{}, err
	}
	s.Record("Deleted approval with ID: " + a.ID)
	return Success("Deleted approval with ID: "+a.ID, a), nil
}

func getApproval(_ context.Context, s *session.State, args Args) (Result, error) {
	id, err := args.RequiredString("approval_id")
	if err != nil {
		return Retry("%v", err), nil
	}
	a, err := s.Store.GetApproval(id)
	if errors.Is(err, db.ErrNotFound) {
		return approvalNotFound(id), nil
	}
	if err != nil {
		return Result{}, err
	}
	s.Record("Retrieved approval with ID: " + a.ID)
	return Success("Retrieved approval with ID: "+a.ID, a), nil
}
