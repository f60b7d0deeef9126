package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"shiftdeck/internal/api"
	"shiftdeck/internal/roster"

	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Inspect and manage the weekly schedule",
	}
	cmd.AddCommand(newScheduleShowCmd(app))
	cmd.AddCommand(newScheduleGenerateCmd(app))
	cmd.AddCommand(newScheduleSaveCmd(app))
	cmd.AddCommand(newSchedulePublishCmd(app))
	return cmd
}

func newScheduleShowCmd(app *App) *cobra.Command {
	var id int64
	var summary bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current schedule, or a generated one by id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.newClient()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), app.requestTimeout())
			defer cancel()

			var sched *roster.Schedule
			meta := map[string]any{}
			if id > 0 {
				s, details, err := client.Schedule(ctx, id)
				if err != nil {
					return writeErr(cmd, err)
				}
				sched = s
				meta["is_full_week"] = details.IsFullWeek
			} else {
				s, err := client.CurrentSchedule(ctx)
				if errors.Is(err, api.ErrNoSchedule) {
					return writeOut(cmd, app, map[string]any{
						"data": nil,
						"meta": map[string]any{"exists": false},
					})
				}
				if err != nil {
					return writeErr(cmd, err)
				}
				sched = s
			}

			meta["assigned"] = sched.TotalAssigned()
			out := map[string]any{"data": sched, "meta": meta}
			if summary {
				out["data"] = map[string]any{
					"schedule_id":  sched.ScheduleID,
					"date_range":   sched.DateRange,
					"is_published": sched.Published,
					"hours":        sched.Summary(),
				}
			}
			return writeOut(cmd, app, out)
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Schedule id (default: the current draft/published schedule)")
	cmd.Flags().BoolVar(&summary, "summary", false, "Show per-staff assigned hours instead of the full grid")
	return cmd
}

func newScheduleGenerateCmd(app *App) *cobra.Command {
	var startDate, endDate string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Ask the server to generate a schedule for a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := roster.ValidateDateRange(startDate, endDate); err != nil {
				return writeErr(cmd, err)
			}
			client, err := app.newClient()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), app.requestTimeout())
			defer cancel()

			id, err := client.GenerateSchedule(ctx, api.GenerateRequest{
				StartDate: strings.TrimSpace(startDate),
				EndDate:   strings.TrimSpace(endDate),
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data":   map[string]any{"schedule_id": id},
				"_hints": []string{fmt.Sprintf("shiftdeck schedule show --id %d", id)},
			})
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newScheduleSaveCmd(app *App) *cobra.Command {
	var file, startDate, endDate string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Persist a full grid snapshot from a schedule document file",
		Long: strings.TrimSpace(`
Persist a full grid snapshot. The file carries a schedule document in the
same JSON shape the API returns (and "schedule show" prints), so an edited
show dump can be fed straight back in. Dates default from the document's
date_range when it parses; pass --start/--end otherwise.
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("read schedule file: %w", err))
			}
			var sched roster.Schedule
			if err := json.Unmarshal(raw, &sched); err != nil {
				return writeErr(cmd, fmt.Errorf("decode schedule file: %w", err))
			}
			sched.Normalize()

			if startDate == "" && endDate == "" {
				if s, e, ok := roster.ParseDateRange(sched.DateRange); ok {
					startDate, endDate = s, e
				}
			}
			if err := roster.ValidateDateRange(startDate, endDate); err != nil {
				return writeErr(cmd, err)
			}

			client, err := app.newClient()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), app.requestTimeout())
			defer cancel()

			id, err := client.SaveSchedule(ctx, api.SaveRequest{
				StartDate:   startDate,
				EndDate:     endDate,
				Assignments: sched.CollectAssignments(),
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"schedule_id": id},
				"meta": map[string]any{"assigned": sched.TotalAssigned()},
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Schedule document JSON file")
	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD; default from the document's date_range)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD; default from the document's date_range)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newSchedulePublishCmd(app *App) *cobra.Command {
	var withSync bool

	cmd := &cobra.Command{
		Use:   "publish <schedule-id>",
		Short: "Finalize a saved schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil || id <= 0 {
				return writeErr(cmd, fmt.Errorf("invalid schedule id: %q", args[0]))
			}
			client, err := app.newClient()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), app.requestTimeout())
			defer cancel()

			if err := client.PublishSchedule(ctx, id, withSync); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"schedule_id": id, "published": true, "synced": withSync},
			})
		},
	}

	cmd.Flags().BoolVar(&withSync, "sync", false, "Also push the published roster to the staff calendar feed")
	return cmd
}
