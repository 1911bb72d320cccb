package trace

import "sort"

// IDs returns the sorted ids of traces.
func IDs(traces []*Trace) []string {
	ids := make([]string, len(traces))
	for i, tr := range traces {
		ids[i] = tr.ID()
	}
	sort.Strings(ids)
	return ids
}

// Changed reports whether the two id sets differ. Neither input is modified.
// Only membership counts: a stroke whose points moved is not a change.
func Changed(current, previous []string) bool {
	if len(current) != len(previous) {
		return true
	}
	a := append([]string(nil), current...)
	b := append([]string(nil), previous...)
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return true
		}
	}
	return false
}

// ByID indexes traces by id.
func ByID(traces []*Trace) map[string]*Trace {
	out := make(map[string]*Trace, len(traces))
	for _, tr := range traces {
		out[tr.ID()] = tr
	}
	return out
}
