package tui

const helpMD = `# Shiftdeck keys

## Schedule grid

| Key | Action |
| --- | --- |
| h / l, ← / → | move between days |
| j / k, ↓ / ↑ | move between time slots |
| J / K | cycle through staff chips in the slot |
| enter / space | pick up the highlighted chip, or drop a held one |
| esc | cancel a pick-up |
| x / delete | remove the highlighted chip |
| a / + | add staff to the slot (search) |
| tab | switch between staff legend and grid |

While holding a chip, slots show a live verdict: a green check means the
staff member is free, a red cross means they are booked elsewhere, and a
question mark means the answer is still on its way. Full slots and slots
that already hold that person refuse the drop outright.

## Schedule

| Key | Action |
| --- | --- |
| g | generate a schedule for a date range |
| s | save edits to the server |
| p | publish the saved schedule |
| r / R | reload from the server (R discards local edits) |
| t | hours summary |
| n | notifications |

## Notifications

| Key | Action |
| --- | --- |
| enter / m | mark read |
| M | mark all read |
| d | delete |
| / | filter |

## General

| Key | Action |
| --- | --- |
| ? | this help |
| q | back / quit |
| ctrl+c | quit immediately |

Edits are kept in a local draft until saved, so a dropped connection
never loses work. See ` + "`shiftdeck docs`" + ` for the longer guides.
`

func (m *appModel) renderHelp(width, height int) string {
	return normalizePane(renderMarkdown(helpMD, width), width, height)
}
