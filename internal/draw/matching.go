package draw

import "sort"

// findPerfectAssignment tries to give every team in teams a distinct group
// currently at `stage` occupancy, respecting confederation limits. It returns
// a group→team mapping on success. This is the feasibility oracle behind
// every pot's fallback path and the pot-4 search pruning.
//
// Kuhn's augmenting-path matching: teams are processed fewest-candidates
// first, each trying its candidate groups in ascending label order; a taken
// group triggers an attempt to re-home its current owner.
func findPerfectAssignment(groups map[string][]Team, teams []Team, stage int) (map[string]Team, bool) {
	if len(teams) == 0 {
		return map[string]Team{}, true
	}

	cands := make(map[string][]string, len(teams))
	byName := make(map[string]Team, len(teams))
	for _, t := range teams {
		cs := candidateGroups(t, groups, stage)
		if len(cs) == 0 {
			return nil, false
		}
		cands[t.Name] = cs
		byName[t.Name] = t
	}

	order := make([]Team, len(teams))
	copy(order, teams)
	sort.SliceStable(order, func(i, j int) bool {
		return len(cands[order[i].Name]) < len(cands[order[j].Name])
	})

	owner := make(map[string]string, len(teams)) // group label -> team name

	var augment func(name string, seen map[string]bool) bool
	augment = func(name string, seen map[string]bool) bool {
		for _, g := range cands[name] {
			if seen[g] {
				continue
			}
			seen[g] = true
			cur, taken := owner[g]
			if !taken || augment(cur, seen) {
				owner[g] = name
				return true
			}
		}
		return false
	}

	for _, t := range order {
		if !augment(t.Name, make(map[string]bool, len(GroupLabels))) {
			return nil, false
		}
	}

	out := make(map[string]Team, len(owner))
	for g, name := range owner {
		out[g] = byName[name]
	}
	return out, true
}
