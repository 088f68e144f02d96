package domain

// OverviewEntry records a single overview for the history view.
type OverviewEntry struct {
	ID         string           `json:"id"`
	Timestamp  string           `json:"timestamp"`
	CommitHash string           `json:"commit_hash,omitempty"`
	Branch     string           `json:"branch,omitempty"`
	Source     string           `json:"source,omitempty"`
	Total      int              `json:"total"`
	Values     map[Severity]int `json:"values"`
}

// GitRef identifies the checked-out revision of a repository.
type GitRef struct {
	Hash   string `json:"hash"`
	Branch string `json:"branch,omitempty"`
}

// ShortHash returns the first seven characters of the hash.
func (r GitRef) ShortHash() string {
	if len(r.Hash) > 7 {
		return r.Hash[:7]
	}
	return r.Hash
}

// EntryFromChart builds a history entry from a chart.
func EntryFromChart(chart SeverityChart) OverviewEntry {
	values := make(map[Severity]int, len(chart.Entries))
	for _, e := range chart.Entries {
		values[e.Severity] = e.Value
	}
	return OverviewEntry{Total: chart.Total, Values: values}
}
