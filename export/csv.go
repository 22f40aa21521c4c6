// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Record is one row of a tabular result, keyed by field name.
type Record map[string]any

// CSV renders rows under a header of fields. Lines are joined with "\n" and
// there is no trailing newline, so an empty result is the header alone.
//
// The quoting rule is narrower than encoding/csv, which also quotes leading
// spaces and \r. Output must stay byte-compatible with earlier exports.
func CSV(fields []string, rows []Record) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(fields, ","))

	cells := make([]string, len(fields))
	for _, row := range rows {
		for i, field := range fields {
			cells[i] = escape(Cell(row[field]))
		}
		lines = append(lines, strings.Join(cells, ","))
	}

	return strings.Join(lines, "\n")
}

// escape quotes a value containing a comma, double quote or newline
func escape(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// Cell stringifies a value for export. nil becomes the empty string.
func Cell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case *string:
		if val == nil {
			return ""
		}
		return *val
	case json.RawMessage:
		return string(val)
	case []byte:
		return string(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
