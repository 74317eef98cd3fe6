package roster

import "sort"

// Merge combines previously persisted members with freshly fetched ones,
// keyed by member ID. Fetched members win on key collision; a member
// present only in existing survives unchanged, so a run never prunes.
// The result is sorted by member ID for deterministic output.
func Merge(existing, fetched []Member) []Member {
	byID := make(map[string]Member, len(existing)+len(fetched))
	for _, m := range existing {
		byID[m.ID] = m
	}
	for _, m := range fetched {
		byID[m.ID] = m
	}

	merged := make([]Member, 0, len(byID))
	for _, m := range byID {
		merged = append(merged, m)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ID < merged[j].ID })
	return merged
}
