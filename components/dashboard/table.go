package dashboard

import (
	"sort"
	"strings"
)

// DefaultStatusColumn is the column used to populate the status filter.
const DefaultStatusColumn = "status"

// FilterPredicate decides whether a row is visible for a normalized query.
type FilterPredicate func(row Row, query string) bool

// DeriveColumns returns the visible and sortable column set of a response.
func DeriveColumns(resp OrderResponse) []string {
	return append([]string(nil), resp.Columns...)
}

// DeriveStatusOptions collects the distinct non-empty values of column,
// sorted ascending. Null and missing cells are skipped.
func DeriveStatusOptions(rows []Row, column string) []string {
	if column == "" {
		column = DefaultStatusColumn
	}
	seen := make(map[string]struct{})
	var out []string
	for _, row := range rows {
		value, ok := row[column]
		if !ok || value.IsNull() {
			continue
		}
		text := value.Text()
		if text == "" {
			continue
		}
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		out = append(out, text)
	}
	sort.Strings(out)
	return out
}

// NormalizeFilter trims and lower-cases free-text filter input.
func NormalizeFilter(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// BuildFilterPredicate returns a case-insensitive substring predicate over
// columns. The query is normalized before matching and an empty query
// matches every row.
func BuildFilterPredicate(columns []string) FilterPredicate {
	cols := append([]string(nil), columns...)
	return func(row Row, query string) bool {
		query = NormalizeFilter(query)
		if query == "" {
			return true
		}
		for _, column := range cols {
			value, ok := row[column]
			if !ok {
				continue
			}
			if strings.Contains(strings.ToLower(value.Text()), query) {
				return true
			}
		}
		return false
	}
}

// FilterRows keeps the rows matching query, preserving order.
func FilterRows(rows []Row, columns []string, query string) []Row {
	match := BuildFilterPredicate(columns)
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if match(row, query) {
			out = append(out, row)
		}
	}
	return out
}
