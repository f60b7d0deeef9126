package cli

import (
	"shiftdeck/internal/api"
	"shiftdeck/internal/availability"
	"shiftdeck/internal/draft"
	"shiftdeck/internal/logging"
	"shiftdeck/internal/tui"
)

// runTUI wires the full editor: file logger, API client, availability cache,
// and the optional draft store. Everything reaches the TUI through its Deps
// struct; nothing here is global.
func runTUI(app *App) error {
	log, closer, err := logging.Open(app.cfg.LogFile(), app.cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	client, err := api.New(app.cfg.API.BaseURL,
		api.WithTimeout(app.cfg.APITimeout()),
		api.WithLogger(log),
	)
	if err != nil {
		return err
	}

	avail := availability.New(client, availability.FailOpen, app.cfg.CacheTTL(), log)

	var drafts *draft.Store
	if path := app.cfg.DraftPath(); path != "" {
		drafts, err = draft.Open(path)
		if err != nil {
			// Drafts are a convenience; the editor works without them.
			log.WithError(err).Warn("draft store unavailable")
			drafts = nil
		}
	}

	return tui.Run(tui.Deps{
		Client: client,
		Avail:  avail,
		Drafts: drafts,
		Log:    log,
	})
}
