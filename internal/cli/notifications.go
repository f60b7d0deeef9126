package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newNotificationsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notif"},
		Short:   "Read and manage schedule notifications",
	}
	cmd.AddCommand(newNotificationsListCmd(app))
	cmd.AddCommand(newNotificationsCountCmd(app))
	cmd.AddCommand(newNotificationsReadCmd(app))
	cmd.AddCommand(newNotificationsReadAllCmd(app))
	cmd.AddCommand(newNotificationsDeleteCmd(app))
	return cmd
}

func newNotificationsListCmd(app *App) *cobra.Command {
	var unreadOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.newClient()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), app.requestTimeout())
			defer cancel()

			items, err := client.Notifications(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			if unreadOnly {
				kept := items[:0]
				for _, n := range items {
					if !n.Read {
						kept = append(kept, n)
					}
				}
				items = kept
			}
			return writeOut(cmd, app, map[string]any{
				"data": items,
				"meta": map[string]any{"count": len(items)},
			})
		},
	}

	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "Only unread notifications")
	return cmd
}

func newNotificationsCountCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Show the unread notification count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.newClient()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), app.requestTimeout())
			defer cancel()

			count, err := client.NotificationCount(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"count": count}})
		},
	}
}

func newNotificationsReadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read <notification-id>",
		Short: "Mark one notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNotificationID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			client, err := app.newClient()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), app.requestTimeout())
			defer cancel()

			if err := client.MarkNotificationRead(ctx, id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "read": true}})
		},
	}
}

func newNotificationsReadAllCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.newClient()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), app.requestTimeout())
			defer cancel()

			if err := client.MarkAllNotificationsRead(ctx); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"read": "all"}})
		},
	}
}

func newNotificationsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <notification-id>",
		Short: "Delete one notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNotificationID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			client, err := app.newClient()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), app.requestTimeout())
			defer cancel()

			if err := client.DeleteNotification(ctx, id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "deleted": true}})
		},
	}
}

func parseNotificationID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid notification id: %q", arg)
	}
	return id, nil
}
