package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// WriteEDN writes an EDN rendering of v covering the subset our payloads
// need: maps, vectors, strings, numbers, booleans, nil. Values pass through
// JSON first so the wire field names (json tags) carry over; numbers are
// decoded as json.Number so 64-bit schedule ids survive unmangled.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := ednEncoder{pretty: pretty}
	enc.value(&buf, x, 0)
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

type ednEncoder struct {
	pretty bool
}

const ednIndent = 2

func (e ednEncoder) value(buf *bytes.Buffer, v any, level int) {
	switch t := v.(type) {
	case nil:
		buf.WriteString("nil")
	case bool:
		buf.WriteString(strconv.FormatBool(t))
	case string:
		buf.WriteString(strconv.Quote(t))
	case json.Number:
		buf.WriteString(t.String())
	case []any:
		e.seq(buf, '[', ']', len(t), level, func(buf *bytes.Buffer, i int) {
			e.value(buf, t[i], level+1)
		})
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.seq(buf, '{', '}', len(keys), level, func(buf *bytes.Buffer, i int) {
			buf.WriteByte(':')
			buf.WriteString(ednKeyword(keys[i]))
			buf.WriteByte(' ')
			e.value(buf, t[keys[i]], level+1)
		})
	default:
		buf.WriteString(strconv.Quote(fmt.Sprintf("%v", v)))
	}
}

// seq prints a bracketed sequence, one element per line when pretty.
func (e ednEncoder) seq(buf *bytes.Buffer, open, closing byte, n, level int, writeElem func(*bytes.Buffer, int)) {
	buf.WriteByte(open)
	if n == 0 {
		buf.WriteByte(closing)
		return
	}
	for i := 0; i < n; i++ {
		if e.pretty {
			buf.WriteByte('\n')
			buf.WriteString(strings.Repeat(" ", (level+1)*ednIndent))
		} else if i > 0 {
			buf.WriteByte(' ')
		}
		writeElem(buf, i)
	}
	if e.pretty {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(" ", level*ednIndent))
	}
	buf.WriteByte(closing)
}

// ednKeyword converts a JSON field name to keyword form: snake_case wire
// names render as kebab-case (:schedule-id, :is-published).
func ednKeyword(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, " ", "-")
	return s
}
