package draw

// canJoin reports whether team may be appended to group right now without
// breaking the confederation limits (UEFA ≤ 2, anything else ≤ 1).
func canJoin(group []Team, team Team) bool {
	n := 0
	for _, t := range group {
		if t.Confederation == team.Confederation {
			n++
		}
	}
	if team.Confederation == UEFA {
		return n < maxUEFA
	}
	return n < maxPerConfed
}

// candidateGroups lists, in ascending label order, every group currently at
// exactly `stage` occupancy that team may legally join.
func candidateGroups(team Team, groups map[string][]Team, stage int) []string {
	var out []string
	for _, g := range GroupLabels {
		if len(groups[g]) == stage && canJoin(groups[g], team) {
			out = append(out, g)
		}
	}
	return out
}

// firstEmptyGroup returns the alphabetically-first group with no team yet.
func firstEmptyGroup(groups map[string][]Team) (string, bool) {
	for _, g := range GroupLabels {
		if len(groups[g]) == 0 {
			return g, true
		}
	}
	return "", false
}

// withTeam returns a snapshot of groups with team appended to label. Untouched
// groups share their backing arrays with the input, so trial placements during
// search stay cheap.
func withTeam(groups map[string][]Team, label string, team Team) map[string][]Team {
	next := make(map[string][]Team, len(groups))
	for g, ts := range groups {
		next[g] = ts
	}
	cur := groups[label]
	ts := make([]Team, len(cur), len(cur)+1)
	copy(ts, cur)
	next[label] = append(ts, team)
	return next
}
