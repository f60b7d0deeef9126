package tui

import (
	"os"
	"strings"
	"sync"
)

// Terminal apps can't change the user's actual font. Instead, we can choose
// between Unicode and ASCII glyph sets for UI affordances (chips, arrows,
// availability marks). This helps on terminals/fonts that don't render some
// glyphs cleanly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("SHIFTDECK_TUI_GLYPHS")))
	switch v {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphBullet() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "•"
}

func glyphArrow() string {
	if glyphs() == glyphSetASCII {
		return "->"
	}
	return "→"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}

func glyphGrab() string {
	if glyphs() == glyphSetASCII {
		return "[grab]"
	}
	return "✥"
}

func glyphAvailable() string {
	if glyphs() == glyphSetASCII {
		return "+"
	}
	return "✓"
}

func glyphUnavailable() string {
	if glyphs() == glyphSetASCII {
		return "x"
	}
	return "✗"
}

func glyphUnknown() string {
	return "?"
}

func glyphUnread() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "●"
}

func glyphRead() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "○"
}
