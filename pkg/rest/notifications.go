package rest

import (
	"context"
	"net/http"

	"github.com/opst/cloudconsole/pkg/api/types/notifications"
)

func (c *client) GetNotifications(ctx context.Context, scope Scope) ([]notifications.Notification, error) {
	return list[notifications.Notification](
		ctx, c, scope.with(c.apipath("notifications")), listing("notifications"),
	)
}

func (c *client) MarkNotificationRead(ctx context.Context, id string) (notifications.Notification, error) {
	return call[notifications.Notification](
		ctx, c, http.MethodPatch, c.apipath("notifications", id),
		struct {
			Read bool `json:"read"`
		}{Read: true},
		notFound("notification", id),
	)
}

func (c *client) DeleteNotification(ctx context.Context, id string) error {
	return send(ctx, c, http.MethodDelete, c.apipath("notifications", id), nil, notFound("notification", id))
}
