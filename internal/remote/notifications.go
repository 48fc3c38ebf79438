package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"dms-go/internal/model"
)

// ListNotifications fetches one page of the notification feed.
func (c *Client) ListNotifications(ctx context.Context, page, pageSize int) (model.Page[model.Notification], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	var p wirePage[wireNotification]
	if err := c.get(ctx, "/notifications", q, &p); err != nil {
		return model.Page[model.Notification]{}, err
	}
	return mapPage(p, mapNotification), nil
}

// MarkNotificationRead flips one notification to read.
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID int64) error {
	path := "/notifications/" + strconv.FormatInt(notificationID, 10) + "/read"
	return c.sendJSON(ctx, http.MethodPatch, path, nil, nil)
}

// MarkAllNotificationsRead flips every unread notification and returns the
// number the service actually updated.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) (int, error) {
	var out struct {
		Updated int `json:"updated"`
	}
	if err := c.sendJSON(ctx, http.MethodPatch, "/notifications/read-all", nil, &out); err != nil {
		return 0, err
	}
	return out.Updated, nil
}
