package domain

import "testing"

func TestResultSet_Merge(t *testing.T) {
	rs := NewResultSet("AcmeCell")

	added := rs.Merge([]ResultItem{
		{Title: "a", URL: "https://example.com/a"},
		{Title: "b", URL: "https://example.com/b"},
	}, 10)
	if added != 2 || rs.Len() != 2 {
		t.Fatalf("first merge: added=%d len=%d, want 2/2", added, rs.Len())
	}

	// duplicate URL skipped, new one appended after existing items
	added = rs.Merge([]ResultItem{
		{Title: "a again", URL: "https://example.com/a"},
		{Title: "c", URL: "https://example.com/c"},
	}, 10)
	if added != 1 {
		t.Fatalf("second merge: added=%d, want 1", added)
	}
	if rs.Items[2].Title != "c" {
		t.Errorf("arrival order broken: items[2]=%q", rs.Items[2].Title)
	}

	seen := make(map[string]bool)
	for _, it := range rs.Items {
		if seen[it.URL] {
			t.Errorf("duplicate url %s in result set", it.URL)
		}
		seen[it.URL] = true
	}
}

func TestResultSet_MergeCap(t *testing.T) {
	rs := NewResultSet("AcmeCell")

	items := []ResultItem{
		{URL: "https://example.com/1"},
		{URL: "https://example.com/2"},
		{URL: "https://example.com/3"},
	}
	if added := rs.Merge(items, 2); added != 2 {
		t.Fatalf("Merge() added = %d, want 2", added)
	}
	if rs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", rs.Len())
	}
}

func TestResultSet_MergeSkipsEmptyURL(t *testing.T) {
	rs := NewResultSet("AcmeCell")

	added := rs.Merge([]ResultItem{{Title: "no url"}}, 10)
	if added != 0 || !rs.Empty() {
		t.Errorf("items without url must be dropped, added=%d len=%d", added, rs.Len())
	}
}

func TestNewHistoryRecord_Truncates(t *testing.T) {
	rs := NewResultSet("AcmeCell")
	var items []ResultItem
	for i := 0; i < MaxHistoryItems+4; i++ {
		items = append(items, ResultItem{URL: string(rune('a'+i)) + "://x"})
	}
	rs.Merge(items, 20)

	rec := NewHistoryRecord(rs, MarketUnlisted, "summary")
	if len(rec.Items) != MaxHistoryItems {
		t.Errorf("history items = %d, want %d", len(rec.Items), MaxHistoryItems)
	}
	if rec.ID == "" || rec.CreatedAt.IsZero() {
		t.Error("record must get id and timestamp")
	}
}
