package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const modalMaxWidth = 64

// modalBoxWidth picks the outer modal width for the current terminal width.
func modalBoxWidth(width int) int {
	w := width - 8
	if w > modalMaxWidth {
		w = modalMaxWidth
	}
	if w < 24 {
		w = 24
	}
	return w
}

// modalBodyWidth is the usable content width inside the modal padding.
func modalBodyWidth(width int) int {
	return modalBoxWidth(width) - 4
}

// renderModalBox draws the shared modal chrome: a header bar with the title
// and a padded body on the modal surface.
func renderModalBox(width int, title string, content string) string {
	boxW := modalBoxWidth(width)
	bodyW := modalBodyWidth(width)

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorModalHeaderFg).
		Background(colorModalHeaderBg).
		Width(boxW).
		Padding(0, 2).
		Render(truncateText(title, bodyW))

	body := lipgloss.NewStyle().
		Foreground(colorModalSurfaceFg).
		Background(colorModalSurfaceBg).
		Width(boxW).
		Padding(1, 2).
		Render(normalizePane(content, bodyW, 0))

	return header + "\n" + body
}

// overlayModal centers the modal box inside the full-screen frame.
func overlayModal(width, height int, box string) string {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

func renderConfirmModal(width int, title string, body string, confirmLabel string, cancelLabel string, focus confirmModalFocus) string {
	// Avoid borders here: some terminals show background artifacts when nesting
	// bordered components inside a modal with a background color.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	}
	if focus == confirmFocusCancel {
		cancel = btnActive.Render(cancelLabel)
	}

	sep := lipgloss.NewStyle().Background(colorControlBg).Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, sep, cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   esc: cancel")

	content := strings.Join([]string{
		body,
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}

func renderInputLine(bodyW int, inputView string) string {
	if bodyW < 10 {
		bodyW = 10
	}

	// Text inputs should always render as a single visual line inside modals.
	// If the view ever contains newlines (or overflows due to ANSI/cursor styling),
	// it can trigger wrapping behavior that looks like "newline insertion" while typing.
	inputView = strings.ReplaceAll(inputView, "\n", " ")
	inputView = strings.ReplaceAll(inputView, "\r", " ")

	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > bodyW {
		// Never exceed the modal body width; terminate ANSI styling to prevent bleed.
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}
