package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"shiftdeck/internal/api"
	"shiftdeck/internal/draft"

	"github.com/spf13/cobra"
)

type doctorCheck struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

var errDoctorIssuesFound = errors.New("doctor found issues")

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check API reachability, log file, and draft database health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := []doctorCheck{
				{Name: "config", OK: true, Detail: fmt.Sprintf("api=%s timeout=%s", app.cfg.API.BaseURL, app.cfg.APITimeout())},
			}
			checks = append(checks, checkAPI(cmd.Context(), app))
			checks = append(checks, checkLogFile(app))
			checks = append(checks, checkDraftDB(cmd.Context(), app))

			hasErrors := false
			for _, c := range checks {
				if !c.OK {
					hasErrors = true
				}
			}

			if err := writeOut(cmd, app, map[string]any{
				"data": checks,
				"meta": map[string]any{"hasErrors": hasErrors},
			}); err != nil {
				return err
			}
			if fail && hasErrors {
				cmd.SilenceErrors = true
				return errDoctorIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status when a check fails")
	return cmd
}

// checkAPI probes the cheapest endpoint. Any HTTP answer counts as reachable,
// even an error status: the server is there and talking.
func checkAPI(ctx context.Context, app *App) doctorCheck {
	check := doctorCheck{Name: "api"}
	client, err := app.newClient()
	if err != nil {
		check.Detail = err.Error()
		return check
	}
	ctx, cancel := context.WithTimeout(ctx, app.requestTimeout())
	defer cancel()

	_, err = client.NotificationCount(ctx)
	var apiErr *api.Error
	if err != nil && !errors.As(err, &apiErr) {
		check.Detail = err.Error()
		return check
	}
	check.OK = true
	check.Detail = app.cfg.API.BaseURL
	return check
}

func checkLogFile(app *App) doctorCheck {
	check := doctorCheck{Name: "log"}
	path := app.cfg.LogFile()
	if path == "" {
		check.OK = true
		check.Detail = "file logging disabled"
		return check
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		check.Detail = err.Error()
		return check
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		check.Detail = err.Error()
		return check
	}
	_ = f.Close()
	check.OK = true
	check.Detail = path
	return check
}

func checkDraftDB(ctx context.Context, app *App) doctorCheck {
	check := doctorCheck{Name: "draft"}
	path := app.cfg.DraftPath()
	if path == "" {
		check.OK = true
		check.Detail = "drafts disabled"
		return check
	}
	store, err := draft.Open(path)
	if err != nil {
		check.Detail = err.Error()
		return check
	}
	if err := store.Ping(ctx); err != nil {
		check.Detail = err.Error()
		return check
	}
	check.OK = true
	check.Detail = path
	return check
}
