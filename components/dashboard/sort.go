package dashboard

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortDirection orders table rows.
type SortDirection string

const (
	SortNone SortDirection = ""
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection accepts asc/desc in any case; anything else is SortNone.
func ParseSortDirection(raw string) SortDirection {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "asc", "ascending":
		return SortAsc
	case "desc", "descending":
		return SortDesc
	default:
		return SortNone
	}
}

// Next cycles none -> asc -> desc -> none, the order a header click follows.
func (d SortDirection) Next() SortDirection {
	switch d {
	case SortNone:
		return SortAsc
	case SortAsc:
		return SortDesc
	default:
		return SortNone
	}
}

// SortSpec names the column and direction a table is sorted by.
type SortSpec struct {
	Column    string        `json:"column"`
	Direction SortDirection `json:"direction"`
}

// Active reports whether sorting changes row order.
func (s SortSpec) Active() bool {
	return s.Column != "" && s.Direction != SortNone
}

// SortRows returns a stably sorted copy of rows. Numbers compare numerically,
// strings with case-insensitive collation, and null or missing cells always
// sort last regardless of direction.
func SortRows(rows []Row, spec SortSpec) []Row {
	out := append([]Row(nil), rows...)
	if !spec.Active() || len(out) < 2 {
		return out
	}
	col := collate.New(language.English, collate.IgnoreCase)
	desc := spec.Direction == SortDesc
	sort.SliceStable(out, func(i, j int) bool {
		a, aok := out[i][spec.Column]
		b, bok := out[j][spec.Column]
		aEmpty := !aok || a.IsNull()
		bEmpty := !bok || b.IsNull()
		if aEmpty || bEmpty {
			return !aEmpty && bEmpty
		}
		cmp := compareValues(col, a, b)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

func compareValues(col *collate.Collator, a, b Value) int {
	if a.Kind() != b.Kind() {
		// mixed columns fall back to text ordering
		return col.CompareString(a.Text(), b.Text())
	}
	switch a.Kind() {
	case KindNumber:
		x, _ := a.Num()
		y, _ := b.Num()
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case KindBool:
		x, _ := a.Flag()
		y, _ := b.Flag()
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		}
		return 1
	default:
		return col.CompareString(a.Text(), b.Text())
	}
}
