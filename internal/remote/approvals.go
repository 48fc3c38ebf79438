package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"dms-go/internal/dms"
	"dms-go/internal/model"
)

// ListRequests fetches one page of permission requests. The service
// requires a status filter; an empty one defaults to PENDING, matching the
// admin review queue this endpoint backs.
func (c *Client) ListRequests(ctx context.Context, in dms.ListRequestsInput) (model.Page[model.PermissionRequest], error) {
	status := in.Status
	if status == "" {
		status = model.StatusPending
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(in.Page))
	q.Set("page_size", strconv.Itoa(in.PageSize))
	q.Set("status", string(status))

	var page wirePage[wirePermissionRequest]
	if err := c.get(ctx, "/permission-requests", q, &page); err != nil {
		return model.Page[model.PermissionRequest]{}, err
	}
	return mapPage(page, mapPermissionRequest), nil
}

// ReviewRequest submits the admin's decision on a permission request.
func (c *Client) ReviewRequest(ctx context.Context, requestID int64, decision dms.ReviewDecision, note string) error {
	body := struct {
		Decision string `json:"decision"`
		Note     string `json:"note,omitempty"`
	}{
		Decision: string(decision),
		Note:     note,
	}
	path := "/permission-requests/" + strconv.FormatInt(requestID, 10) + "/review"
	return c.sendJSON(ctx, http.MethodPost, path, body, nil)
}
