package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"shiftdeck/internal/api"
	"shiftdeck/internal/config"
	"shiftdeck/internal/format"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// App carries the persistent flag state shared by every subcommand. Config
// is loaded once in PersistentPreRunE; flags override env.
type App struct {
	APIBase        string
	TimeoutSeconds int
	PrettyJSON     bool
	Format         string

	cfg *config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "shiftdeck",
		Short:        "Shiftdeck staff-scheduling CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive schedule editor
  shiftdeck

  # Scriptable commands
  shiftdeck schedule show
  shiftdeck schedule generate --start 2025-01-06 --end 2025-01-10
  shiftdeck staff available --day Monday --time "9:00 am"
  shiftdeck notifications count
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI, but only on a real terminal.
			if cmd.HasSubCommands() && len(args) == 0 {
				if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
					return cmd.Help()
				}
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return writeErr(cmd, err)
		}
		if app.APIBase != "" {
			cfg.API.BaseURL = app.APIBase
		}
		if cmd.Flags().Changed("timeout") || cmd.InheritedFlags().Changed("timeout") {
			cfg.API.TimeoutSeconds = app.TimeoutSeconds
		}
		app.cfg = cfg
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.APIBase, "api", "", "Scheduling API base URL (default from SHIFTDECK_API_URL)")
	cmd.PersistentFlags().IntVar(&app.TimeoutSeconds, "timeout", 0, "Request timeout in seconds (default from SHIFTDECK_API_TIMEOUT)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("SHIFTDECK_FORMAT", "json"), "Output format (json|edn)")

	cmd.AddCommand(newScheduleCmd(app))
	cmd.AddCommand(newStaffCmd(app))
	cmd.AddCommand(newNotificationsCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// newClient builds the API client from the resolved config. CLI commands log
// nowhere; only the TUI opens the log file.
func (app *App) newClient() (*api.Client, error) {
	return api.New(app.cfg.API.BaseURL, api.WithTimeout(app.cfg.APITimeout()))
}

// requestTimeout bounds one CLI command's round trip.
func (app *App) requestTimeout() time.Duration {
	return app.cfg.APITimeout()
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
