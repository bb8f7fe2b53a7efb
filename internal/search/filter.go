package search

import (
	"strings"

	"jobboard/internal/domain/job"
)

// Filter holds the optional listing filters. An empty field imposes no constraint.
type Filter struct {
	Keyword  string
	Type     string
	Location string
}

// Normalize trims surrounding whitespace from every field so that a blank
// value behaves exactly like an absent one.
func (f Filter) Normalize() Filter {
	return Filter{
		Keyword:  strings.TrimSpace(f.Keyword),
		Type:     strings.TrimSpace(f.Type),
		Location: strings.TrimSpace(f.Location),
	}
}

// Matches evaluates the filter against a job in memory with the same
// semantics as the SQL built by Build.
func (f Filter) Matches(j job.Job) bool {
	n := f.Normalize()
	if n.Keyword != "" {
		if !containsFold(j.Title, n.Keyword) &&
			!containsFold(j.Company, n.Keyword) &&
			!containsFold(j.Description, n.Keyword) {
			return false
		}
	}
	if n.Type != "" && string(j.Type) != n.Type {
		return false
	}
	if n.Location != "" && !containsFold(j.Location, n.Location) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
