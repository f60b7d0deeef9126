package tui

import (
	"fmt"
	"strings"
	"time"

	"shiftdeck/internal/api"
	"shiftdeck/internal/roster"

	"github.com/charmbracelet/bubbles/list"
)

type staffItem struct {
	staff roster.StaffRef
}

func (i staffItem) FilterValue() string { return i.staff.Name }
func (i staffItem) Title() string       { return glyphBullet() + " " + i.staff.Name }
func (i staffItem) Description() string { return i.staff.ID }

type notifItem struct {
	notif api.Notification
}

func (i notifItem) FilterValue() string { return i.notif.Message }

func (i notifItem) Title() string {
	mark := glyphUnread()
	if i.notif.Read {
		mark = glyphRead()
	}
	msg := strings.TrimSpace(i.notif.Message)
	if msg == "" {
		msg = "(no message)"
	}
	return mark + " " + msg
}

func (i notifItem) Description() string {
	kind := strings.TrimSpace(i.notif.Kind)
	when := formatNotifTime(i.notif.CreatedAt)
	switch {
	case kind != "" && when != "":
		return kind + "  " + when
	case kind != "":
		return kind
	default:
		return when
	}
}

func formatNotifTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Jan 2 15:04")
		}
	}
	return raw
}

func newList(title, help string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	// We render our own global footer + breadcrumb, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("entry", "entries")
	// Bubble list defaults to quitting on ESC; here ESC is "back/cancel".
	l.KeyMap.Quit.SetKeys("q")
	// Emacs-style navigation aliases (common muscle memory).
	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	return l
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
