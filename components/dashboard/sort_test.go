package dashboard

import "testing"

func ids(rows []Row) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row["order_id"].Text()
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSortRowsNumeric(t *testing.T) {
	rows := []Row{
		{"order_id": String("a"), "total": Number(100)},
		{"order_id": String("b"), "total": Number(9)},
		{"order_id": String("c"), "total": Number(25)},
	}
	asc := SortRows(rows, SortSpec{Column: "total", Direction: SortAsc})
	if got := ids(asc); !equalStrings(got, []string{"b", "c", "a"}) {
		t.Fatalf("unexpected asc order %v", got)
	}
	desc := SortRows(rows, SortSpec{Column: "total", Direction: SortDesc})
	if got := ids(desc); !equalStrings(got, []string{"a", "c", "b"}) {
		t.Fatalf("unexpected desc order %v", got)
	}
	if got := ids(rows); !equalStrings(got, []string{"a", "b", "c"}) {
		t.Fatalf("input should not be reordered, got %v", got)
	}
}

func TestSortRowsNullsLastBothDirections(t *testing.T) {
	rows := []Row{
		{"order_id": String("null"), "priority": Null()},
		{"order_id": String("two"), "priority": Number(2)},
		{"order_id": String("missing")},
		{"order_id": String("one"), "priority": Number(1)},
	}
	asc := ids(SortRows(rows, SortSpec{Column: "priority", Direction: SortAsc}))
	if !equalStrings(asc, []string{"one", "two", "null", "missing"}) {
		t.Fatalf("unexpected asc order %v", asc)
	}
	desc := ids(SortRows(rows, SortSpec{Column: "priority", Direction: SortDesc}))
	if !equalStrings(desc, []string{"two", "one", "null", "missing"}) {
		t.Fatalf("unexpected desc order %v", desc)
	}
}

func TestSortRowsStringsIgnoreCase(t *testing.T) {
	rows := []Row{
		{"order_id": String("1"), "customer": String("delta")},
		{"order_id": String("2"), "customer": String("Alpha")},
		{"order_id": String("3"), "customer": String("charlie")},
		{"order_id": String("4"), "customer": String("Bravo")},
	}
	got := ids(SortRows(rows, SortSpec{Column: "customer", Direction: SortAsc}))
	if !equalStrings(got, []string{"2", "4", "3", "1"}) {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestSortRowsBooleans(t *testing.T) {
	rows := []Row{
		{"order_id": String("rush"), "is_rush": Bool(true)},
		{"order_id": String("normal"), "is_rush": Bool(false)},
	}
	got := ids(SortRows(rows, SortSpec{Column: "is_rush", Direction: SortAsc}))
	if !equalStrings(got, []string{"normal", "rush"}) {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestSortRowsInactiveSpecKeepsOrder(t *testing.T) {
	rows := []Row{
		{"order_id": String("b"), "total": Number(2)},
		{"order_id": String("a"), "total": Number(1)},
	}
	got := ids(SortRows(rows, SortSpec{Column: "total"}))
	if !equalStrings(got, []string{"b", "a"}) {
		t.Fatalf("SortNone should keep response order, got %v", got)
	}
}

func TestSortDirectionCycle(t *testing.T) {
	if SortNone.Next() != SortAsc || SortAsc.Next() != SortDesc || SortDesc.Next() != SortNone {
		t.Fatalf("unexpected sort cycle")
	}
	if ParseSortDirection(" DESC ") != SortDesc || ParseSortDirection("ascending") != SortAsc || ParseSortDirection("up") != SortNone {
		t.Fatalf("unexpected ParseSortDirection results")
	}
}
