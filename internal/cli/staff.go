package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStaffCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Query staff rosters and availability",
	}
	cmd.AddCommand(newStaffListCmd(app))
	cmd.AddCommand(newStaffAvailableCmd(app))
	cmd.AddCommand(newStaffCheckCmd(app))
	return cmd
}

func newStaffListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the full staff roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.newClient()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), app.requestTimeout())
			defer cancel()

			staff, err := client.ListStaff(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": staff,
				"meta": map[string]any{"count": len(staff)},
			})
		},
	}
}

func newStaffAvailableCmd(app *App) *cobra.Command {
	var day, timeSlot string

	cmd := &cobra.Command{
		Use:   "available",
		Short: "List staff free at one (day, time) slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.newClient()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), app.requestTimeout())
			defer cancel()

			staff, err := client.AvailableStaff(ctx, strings.TrimSpace(day), strings.TrimSpace(timeSlot))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": staff,
				"meta": map[string]any{"day": day, "time": timeSlot, "count": len(staff)},
			})
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Day label, e.g. Monday")
	cmd.Flags().StringVar(&timeSlot, "time", "", `Time slot label, e.g. "9:00 am"`)
	_ = cmd.MarkFlagRequired("day")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

// errStaffUnavailable drives the exit code contract of `staff check`:
// 0 available, 1 unavailable, 2 transport error. The raw server answer is
// reported as-is; the editor's fail-open policy does not apply here.
var errStaffUnavailable = errors.New("staff unavailable")

func newStaffCheckCmd(app *App) *cobra.Command {
	var staffID, day, timeSlot string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether one staff member is free at one slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.newClient()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), app.requestTimeout())
			defer cancel()

			available, err := client.CheckAvailability(ctx, strings.TrimSpace(staffID), strings.TrimSpace(day), strings.TrimSpace(timeSlot))
			if err != nil {
				return writeErr(cmd, checkTransportError{err: err})
			}
			if err := writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"staff_id":     staffID,
					"day":          day,
					"time":         timeSlot,
					"is_available": available,
				},
			}); err != nil {
				return err
			}
			if !available {
				cmd.SilenceErrors = true
				return errStaffUnavailable
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&staffID, "staff", "", "Staff id")
	cmd.Flags().StringVar(&day, "day", "", "Day label, e.g. Monday")
	cmd.Flags().StringVar(&timeSlot, "time", "", `Time slot label, e.g. "9:00 am"`)
	_ = cmd.MarkFlagRequired("staff")
	_ = cmd.MarkFlagRequired("day")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

type checkTransportError struct {
	err error
}

func (e checkTransportError) Error() string {
	return fmt.Sprintf("availability check failed: %v", e.err)
}

func (e checkTransportError) Unwrap() error { return e.err }

// ExitCode maps an Execute error onto the process exit status. `staff check`
// distinguishes "unavailable" (1) from a failed request (2); everything else
// exits 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var transport checkTransportError
	if errors.As(err, &transport) {
		return 2
	}
	return 1
}
