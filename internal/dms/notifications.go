package dms

import (
	"context"

	"dms-go/internal/model"
)

// ListNotifications returns one page of the notification feed, newest first.
func (s *Service) ListNotifications(ctx context.Context, page, pageSize int) (model.Page[model.Notification], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return run(ctx, s, "ListNotifications",
		func(ctx context.Context) (model.Page[model.Notification], error) {
			return s.remote.ListNotifications(ctx, page, pageSize)
		},
		func() (model.Page[model.Notification], error) {
			return s.store.ListNotifications(page, pageSize), nil
		},
	)
}

// MarkNotificationRead flips a notification to read. Already-read
// notifications stay read; there is no way back.
func (s *Service) MarkNotificationRead(ctx context.Context, notificationID int64) error {
	return runVoid(ctx, s, "MarkNotificationRead",
		func(ctx context.Context) error {
			return s.remote.MarkNotificationRead(ctx, notificationID)
		},
		func() error {
			s.store.MarkNotificationRead(notificationID)
			return nil
		},
	)
}

// MarkAllNotificationsRead flips every unread notification to read and
// returns the number actually flipped.
func (s *Service) MarkAllNotificationsRead(ctx context.Context) (int, error) {
	return run(ctx, s, "MarkAllNotificationsRead",
		func(ctx context.Context) (int, error) {
			return s.remote.MarkAllNotificationsRead(ctx)
		},
		func() (int, error) {
			return s.store.MarkAllNotificationsRead(), nil
		},
	)
}
