package draw

import "fmt"

// backtrackBudget caps the number of node expansions in the pot-4 search.
// The search space is tiny (≤12 teams, ≤12 groups) so this never triggers on
// sane inputs; exhaustion reads as infeasibility rather than a hang.
const backtrackBudget = 4096

// runPot1 places the hosts into their fixed groups, then the shuffled
// remainder into the first empty group each. Running out of empty groups with
// teams still pending is a defect, not a draw outcome.
func (s *Session) runPot1() error {
	for _, h := range hostSlots {
		if i := indexByName(s.pots[0], h.name); i >= 0 && len(s.groups[h.group]) == 0 {
			s.commit(1, s.pots[0][i], h.group)
		}
	}

	rest := append([]Team(nil), s.pots[0]...)
	s.shuffle(rest)
	for _, t := range rest {
		g, ok := firstEmptyGroup(s.groups)
		if !ok {
			return fmt.Errorf("%w: pot 1 has teams left but no empty group", ErrInvariantViolated)
		}
		s.commit(1, t, g)
	}
	return nil
}

// runGreedyPot implements pots 2 and 3: shuffle, place each team into its
// first candidate group, and on the first team with no candidate hand the
// entire remaining pot to the matcher. One bad greedy choice early in the
// shuffle can be what strands a later team, so the repair is global.
func (s *Session) runGreedyPot(potNum, stage int) error {
	order := append([]Team(nil), s.pots[potNum-1]...)
	s.shuffle(order)

	for i, t := range order {
		if cs := candidateGroups(t, s.groups, stage); len(cs) > 0 {
			s.commit(potNum, t, cs[0])
			continue
		}
		mapping, ok := findPerfectAssignment(s.groups, order[i:], stage)
		if !ok {
			return s.fail(potNum, fmt.Sprintf("Pot%d placement failed for %s (no feasible assignment)", potNum, t.Name))
		}
		s.commitMapping(potNum, mapping)
		return nil
	}
	return nil
}

// runPot4 solves the last pot with depth-first backtracking over the shuffle
// order. Greedy placement is unsafe here: there is no later pot to absorb a
// mistake, so every tentative placement is forward-checked with the matcher
// before descending.
func (s *Session) runPot4() error {
	order := append([]Team(nil), s.pots[3]...)
	s.shuffle(order)

	budget := backtrackBudget
	seq, ok := backtrackAssign(s.groups, order, &budget)
	if !ok {
		return s.fail(4, "Pot4 placement failed to find a feasible assignment")
	}
	for _, p := range seq {
		s.commit(4, p.team, p.group)
	}
	return nil
}

type placement struct {
	group string
	team  Team
}

// backtrackAssign searches for a full stage-3 placement of remaining, in
// order. Each candidate placement for the head is only descended into if the
// tail still admits a perfect matching, which prunes branches that would
// dead-end several teams later.
func backtrackAssign(groups map[string][]Team, remaining []Team, budget *int) ([]placement, bool) {
	if len(remaining) == 0 {
		return nil, true
	}
	if *budget <= 0 {
		return nil, false
	}
	*budget--

	t := remaining[0]
	for _, g := range candidateGroups(t, groups, GroupCapacity-1) {
		next := withTeam(groups, g, t)
		if _, ok := findPerfectAssignment(next, remaining[1:], GroupCapacity-1); !ok {
			continue
		}
		if seq, ok := backtrackAssign(next, remaining[1:], budget); ok {
			return append([]placement{{group: g, team: t}}, seq...), true
		}
	}
	return nil, false
}

// CompleteAll runs every remaining pot's batch strategy in rank order,
// skipping pots already emptied by earlier AdvanceOne calls. It aborts on the
// first pot failure, leaving completed placements intact; nil means the draw
// finished.
func (s *Session) CompleteAll() error {
	if s.failure != nil {
		return ErrDrawBlocked
	}
	if s.Done() {
		return ErrDrawComplete
	}

	if len(s.pots[0]) > 0 {
		if err := s.runPot1(); err != nil {
			return err
		}
	}
	if len(s.pots[1]) > 0 {
		if err := s.runGreedyPot(2, 1); err != nil {
			return err
		}
	}
	if len(s.pots[2]) > 0 {
		if err := s.runGreedyPot(3, 2); err != nil {
			return err
		}
	}
	if len(s.pots[3]) > 0 {
		if err := s.runPot4(); err != nil {
			return err
		}
	}
	return nil
}

// AdvanceOne draws from the first non-empty pot. It normally places exactly
// one team, but when a greedy draw stalls and the matcher repairs the whole
// remaining pot, a single call commits every team of that batch; callers see
// the difference only in the log. A transient stall (no legal slot right now,
// pot still solvable or retryable) leaves the team at the front of its queue
// and returns nil; only a fatal pot-4 failure blocks the session.
func (s *Session) AdvanceOne() error {
	if s.failure != nil {
		return ErrDrawBlocked
	}
	switch {
	case len(s.pots[0]) > 0:
		return s.advancePot1()
	case len(s.pots[1]) > 0:
		return s.advanceMatched(2, 1)
	case len(s.pots[2]) > 0:
		return s.advanceMatched(3, 2)
	case len(s.pots[3]) > 0:
		return s.advancePot4()
	}
	return ErrDrawComplete
}

// ensureQueue rebuilds a pot's pending-draw queue from its current unplaced
// members when the queue is empty. Pot 1 excludes the hosts: they are placed
// by the fixed-order rule, never drawn.
func (s *Session) ensureQueue(potIdx int, excludeHosts bool) {
	if len(s.queues[potIdx]) > 0 {
		return
	}
	var q []Team
	for _, t := range s.pots[potIdx] {
		if excludeHosts && isHost(t.Name) {
			continue
		}
		q = append(q, t)
	}
	s.shuffle(q)
	s.queues[potIdx] = q
}

func isHost(name string) bool {
	for _, h := range hostSlots {
		if h.name == name {
			return true
		}
	}
	return false
}

func (s *Session) advancePot1() error {
	// Hosts strictly in order, one per call, while their groups are empty.
	for _, h := range hostSlots {
		if i := indexByName(s.pots[0], h.name); i >= 0 && len(s.groups[h.group]) == 0 {
			s.commit(1, s.pots[0][i], h.group)
			return nil
		}
	}

	s.ensureQueue(0, true)
	if len(s.queues[0]) == 0 {
		return fmt.Errorf("%w: pot 1 not empty but nothing drawable", ErrInvariantViolated)
	}
	t := s.queues[0][0]
	g, ok := firstEmptyGroup(s.groups)
	if !ok {
		return fmt.Errorf("%w: pot 1 has teams left but no empty group", ErrInvariantViolated)
	}
	s.commit(1, t, g)
	return nil
}

// advanceMatched is the single-team rule for pots 2 and 3: greedy first, then
// a matcher repair over this team plus the rest of its queue. A failed repair
// is transient; the team goes back to the front of the queue and the caller
// may redraw, reseed, or reset.
func (s *Session) advanceMatched(potNum, stage int) error {
	s.ensureQueue(potNum-1, false)
	t := s.queues[potNum-1][0]
	s.queues[potNum-1] = s.queues[potNum-1][1:]

	if cs := candidateGroups(t, s.groups, stage); len(cs) > 0 {
		s.commit(potNum, t, cs[0])
		return nil
	}

	remaining := append([]Team{t}, s.queues[potNum-1]...)
	if mapping, ok := findPerfectAssignment(s.groups, remaining, stage); ok {
		s.commitMapping(potNum, mapping)
		return nil
	}

	s.queues[potNum-1] = append([]Team{t}, s.queues[potNum-1]...)
	s.log = append(s.log, fmt.Sprintf("Pot%d: no legal slot yet for %s (try another draw or change seed)", potNum, t.Name))
	return nil
}

func (s *Session) advancePot4() error {
	s.ensureQueue(3, false)
	t := s.queues[3][0]
	s.queues[3] = s.queues[3][1:]

	// One-step-ahead check against the pot's full remaining membership, not
	// just the queue: every still-unplaced pot-4 team must stay placeable.
	rest := make([]Team, 0, len(s.pots[3])-1)
	for _, other := range s.pots[3] {
		if other.Name != t.Name {
			rest = append(rest, other)
		}
	}
	for _, g := range candidateGroups(t, s.groups, GroupCapacity-1) {
		if _, ok := findPerfectAssignment(withTeam(s.groups, g, t), rest, GroupCapacity-1); ok {
			s.commit(4, t, g)
			return nil
		}
	}

	// No single placement keeps the pot feasible; try to solve this team plus
	// the rest of the queue outright.
	remaining := append([]Team{t}, s.queues[3]...)
	budget := backtrackBudget
	if seq, ok := backtrackAssign(s.groups, remaining, &budget); ok {
		for _, p := range seq {
			s.commit(4, p.team, p.group)
		}
		return nil
	}

	s.queues[3] = append([]Team{t}, s.queues[3]...)
	return s.fail(4, fmt.Sprintf("Pot4: failed to place %s feasibly", t.Name))
}
