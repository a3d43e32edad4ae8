package domain

// ResultItem is one retrieved document reference. URL doubles as the
// dedup key within a single scan.
type ResultItem struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
	Source  string `json:"source"`
	Date    string `json:"date,omitempty"`
}

// ResultSet is the ordered, URL-deduplicated output of one scan. Items keep
// arrival order across stages; no re-sorting by date or relevance happens
// because providers disagree on whether a date exists at all.
//
// Generic marks a set produced by the qualifier-only last-resort query:
// results are industry-wide rather than target-specific.
type ResultSet struct {
	Target  string       `json:"target"`
	Items   []ResultItem `json:"items"`
	Generic bool         `json:"generic,omitempty"`

	seen map[string]struct{}
}

func NewResultSet(target Target) *ResultSet {
	return &ResultSet{
		Target: target.String(),
		seen:   make(map[string]struct{}),
	}
}

// Merge appends items whose URL has not been seen yet, up to max total
// items in the set. Returns how many were actually added.
func (rs *ResultSet) Merge(items []ResultItem, max int) int {
	if rs.seen == nil {
		rs.seen = make(map[string]struct{}, len(rs.Items))
		for _, it := range rs.Items {
			rs.seen[it.URL] = struct{}{}
		}
	}

	added := 0
	for _, it := range items {
		if len(rs.Items) >= max {
			break
		}
		if it.URL == "" {
			continue
		}
		if _, dup := rs.seen[it.URL]; dup {
			continue
		}
		rs.seen[it.URL] = struct{}{}
		rs.Items = append(rs.Items, it)
		added++
	}
	return added
}

func (rs *ResultSet) Len() int {
	return len(rs.Items)
}

func (rs *ResultSet) Empty() bool {
	return len(rs.Items) == 0
}
