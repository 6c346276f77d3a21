package academic

import (
	"math"
	"strconv"
	"strings"

	"github.com/cumaze/registro-consorcio/core"
)

// Sheet is one worksheet of an uploaded workbook, as text cells.
// Rows[0] is not special: Header holds the first row.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Workbook is the parsed content of a spreadsheet file, sheets in tab order.
type Workbook struct {
	FileName string
	Sheets   []Sheet
}

// record is a row keyed by normalized header.
type record map[string]string

// Keys returns the normalized lookup key of every header cell.
// Repeated headers get "_1", "_2"... suffixes in order of appearance; blank headers yield "".
func (s Sheet) Keys() []string {
	seen := make(map[string]int, len(s.Header))
	keys := make([]string, len(s.Header))
	for i, h := range s.Header {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		n := seen[h]
		seen[h] = n + 1
		if n > 0 {
			h += "_" + strconv.Itoa(n)
		}
		keys[i] = core.NormalizeKey(h)
	}
	return keys
}

// records returns the non-blank rows keyed by normalized header.
func (s Sheet) records() []record {
	keys := s.Keys()
	out := make([]record, 0, len(s.Rows))
	for _, row := range s.Rows {
		rec := make(record, len(keys))
		blank := true
		for i, k := range keys {
			if k == "" {
				continue
			}
			var v string
			if i < len(row) {
				v = row[i]
			}
			if strings.TrimSpace(v) != "" {
				blank = false
			}
			rec[k] = v
		}
		if !blank {
			out = append(out, rec)
		}
	}
	return out
}

// str returns the first non-empty value among keys, or def.
func (r record) str(def string, keys ...string) string {
	for _, k := range keys {
		if v := r[k]; v != "" {
			return v
		}
	}
	return def
}

// num parses the first non-empty value among keys; anything unparsable counts as 0.
func (r record) num(keys ...string) float64 {
	v := r.str("", keys...)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
