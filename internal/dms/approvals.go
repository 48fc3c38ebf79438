package dms

import (
	"context"

	"dms-go/internal/model"
)

// ListRequestsInput filters and pages the permission request collection.
// An empty Status lists requests in every state.
type ListRequestsInput struct {
	Status   model.PermissionStatus
	Page     int
	PageSize int
}

// ListRequests returns one page of permission requests, newest first, with
// requester emails backfilled from the user table.
func (s *Service) ListRequests(ctx context.Context, in ListRequestsInput) (model.Page[model.PermissionRequest], error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize < 1 {
		in.PageSize = 10
	}
	return run(ctx, s, "ListRequests",
		func(ctx context.Context) (model.Page[model.PermissionRequest], error) {
			return s.remote.ListRequests(ctx, in)
		},
		func() (model.Page[model.PermissionRequest], error) {
			return s.store.ListRequests(in), nil
		},
	)
}

// ApproveRequest approves a pending permission request, applying the
// requested document mutation and notifying the requester. Approving an
// already-reviewed request is a no-op.
func (s *Service) ApproveRequest(ctx context.Context, requestID int64) error {
	return runVoid(ctx, s, "ApproveRequest",
		func(ctx context.Context) error {
			return s.remote.ReviewRequest(ctx, requestID, DecisionApprove, "")
		},
		func() error {
			_, err := s.store.ApproveRequest(requestID)
			return err
		},
	)
}

// RejectRequest rejects a pending permission request, restoring the document
// to ACTIVE and notifying the requester. Rejecting an already-reviewed
// request is a no-op.
func (s *Service) RejectRequest(ctx context.Context, requestID int64, note string) error {
	return runVoid(ctx, s, "RejectRequest",
		func(ctx context.Context) error {
			return s.remote.ReviewRequest(ctx, requestID, DecisionReject, note)
		},
		func() error {
			_, err := s.store.RejectRequest(requestID, note)
			return err
		},
	)
}
