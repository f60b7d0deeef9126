package api

import (
	"context"
	"fmt"
	"net/http"
)

// Notification is one entry in the notification panel.
type Notification struct {
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	Kind      string `json:"type"`
	Read      bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

type notificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}

func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var out notificationsResponse
	if _, err := c.doJSON(ctx, http.MethodGet, "/api/notifications", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Notifications, nil
}

type notificationCountResponse struct {
	Count int `json:"count"`
}

// NotificationCount returns the unread badge count.
func (c *Client) NotificationCount(ctx context.Context) (int, error) {
	var out notificationCountResponse
	if _, err := c.doJSON(ctx, http.MethodGet, "/api/notifications/count", nil, nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/notifications/%d/read", id)
	_, err := c.doJSON(ctx, http.MethodPost, path, nil, nil, nil)
	return err
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/api/notifications/read-all", nil, nil, nil)
	return err
}

func (c *Client) DeleteNotification(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/notifications/%d", id)
	_, err := c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
	return err
}
