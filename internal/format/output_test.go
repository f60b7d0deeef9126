package format

import (
	"bytes"
	"strings"
	"testing"

	"shiftdeck/internal/roster"
)

func TestWriteJSONCompactAndPretty(t *testing.T) {
	t.Parallel()
	v := map[string]any{"schedule_id": int64(41), "is_published": false}

	var compact bytes.Buffer
	if err := Write(&compact, v, "json", false); err != nil {
		t.Fatalf("Write json: %v", err)
	}
	if got := compact.String(); got != `{"is_published":false,"schedule_id":41}`+"\n" {
		t.Fatalf("unexpected compact json: %q", got)
	}

	var pretty bytes.Buffer
	if err := Write(&pretty, v, "json", true); err != nil {
		t.Fatalf("Write pretty json: %v", err)
	}
	if !strings.Contains(pretty.String(), "\n  \"schedule_id\": 41") {
		t.Fatalf("expected indented output; got %q", pretty.String())
	}
}

func TestWriteEDNKeywordsAndNumbers(t *testing.T) {
	t.Parallel()
	sched := roster.New("2025-01-06 to 2025-01-10", []string{"Monday"})
	sched.ScheduleID = 9007199254740993 // outside float64 integer range

	var buf bytes.Buffer
	if err := Write(&buf, sched, "edn", false); err != nil {
		t.Fatalf("Write edn: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, ":schedule-id 9007199254740993") {
		t.Fatalf("large id mangled: %q", out)
	}
	if !strings.Contains(out, ":date-range") || !strings.Contains(out, ":is-published false") {
		t.Fatalf("keywords not kebab-cased: %q", out)
	}
	if strings.Contains(out, "_") {
		t.Fatalf("snake_case leaked into keywords: %q", out)
	}
}

func TestWriteEDNPrettyNesting(t *testing.T) {
	t.Parallel()
	v := map[string]any{"staff": []any{map[string]any{"id": "816031001", "name": "Daniel Rasheed"}}}

	var buf bytes.Buffer
	if err := Write(&buf, v, "edn", true); err != nil {
		t.Fatalf("Write edn pretty: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, ":staff [") || !strings.Contains(out, ":name \"Daniel Rasheed\"") {
		t.Fatalf("unexpected pretty edn: %q", out)
	}
	if !strings.Contains(out, "\n") {
		t.Fatalf("pretty output should be multi-line: %q", out)
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := Write(&buf, 1, "yaml", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
