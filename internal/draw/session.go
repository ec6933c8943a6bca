package draw

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

var ErrInvalidPots = errors.New("invalid pots")
var ErrDrawComplete = errors.New("draw already complete")
var ErrDrawBlocked = errors.New("draw blocked by pot failure, reset required")
var ErrInvariantViolated = errors.New("draw invariant violated")

// PotFailure marks a pot with no feasible completion. Once set on a session,
// the draw refuses to proceed until a reset.
type PotFailure struct {
	Pot     int
	Message string
}

func (e *PotFailure) Error() string { return e.Message }

// Session is the aggregate root of one draw: the four shrinking pots, the
// twelve growing groups, the per-pot pending-draw queues, the placement log,
// and the failure marker. A session is not safe for concurrent use; callers
// serialize operations (the lobby actor does exactly that).
type Session struct {
	pots     [PotCount][]Team
	groups   map[string][]Team
	queues   [PotCount][]Team
	log      []string
	failure  *PotFailure
	baseline [PotCount][]Team

	seed *int64
	rng  *rand.Rand
}

// NewSession validates and deep-copies pots (4 pots of exactly 12 teams each,
// all fields present, unique names) and returns a fresh session. The pots
// given become the baseline a nil Reset restores. A non-nil seed makes every
// shuffle, and therefore the whole draw, deterministic.
func NewSession(pots [][]Team, seed *int64) (*Session, error) {
	if err := validatePots(pots); err != nil {
		return nil, err
	}

	s := &Session{
		groups: emptyGroups(),
		seed:   seed,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for i := range s.pots {
		s.pots[i] = copyPot(pots[i], i+1)
		s.baseline[i] = copyPot(pots[i], i+1)
	}
	return s, nil
}

// Reset discards all progress and restarts the session from the supplied
// pots, or from the construction-time baseline when pots is nil. The seed
// setting is preserved. A valid session is never mutated by a failed reset.
func (s *Session) Reset(pots [][]Team) error {
	if pots == nil {
		for i := range s.baseline {
			s.pots[i] = copyPot(s.baseline[i], i+1)
		}
	} else {
		if err := validatePots(pots); err != nil {
			return err
		}
		for i := range s.pots {
			s.pots[i] = copyPot(pots[i], i+1)
			s.baseline[i] = copyPot(pots[i], i+1)
		}
	}
	s.groups = emptyGroups()
	s.queues = [PotCount][]Team{}
	s.log = nil
	s.failure = nil
	return nil
}

func validatePots(pots [][]Team) error {
	if len(pots) != PotCount {
		return fmt.Errorf("%w: got %d pots, want %d", ErrInvalidPots, len(pots), PotCount)
	}
	seen := make(map[string]bool, PotCount*PotSize)
	for i, pot := range pots {
		if len(pot) != PotSize {
			return fmt.Errorf("%w: pot %d has %d teams, want %d", ErrInvalidPots, i+1, len(pot), PotSize)
		}
		for _, t := range pot {
			if t.Name == "" || t.Confederation == "" {
				return fmt.Errorf("%w: pot %d has a team with missing fields", ErrInvalidPots, i+1)
			}
			if seen[t.Name] {
				return fmt.Errorf("%w: duplicate team %q", ErrInvalidPots, t.Name)
			}
			seen[t.Name] = true
		}
	}
	return nil
}

func emptyGroups() map[string][]Team {
	groups := make(map[string][]Team, len(GroupLabels))
	for _, g := range GroupLabels {
		groups[g] = []Team{}
	}
	return groups
}

func copyPot(pot []Team, potNum int) []Team {
	out := make([]Team, len(pot))
	copy(out, pot)
	for i := range out {
		out[i].Pot = potNum
	}
	return out
}

// shuffle permutes ts in place. With a seed set, every shuffle restarts from
// a fresh generator so queue rebuilds are reproducible.
func (s *Session) shuffle(ts []Team) {
	r := s.rng
	if s.seed != nil {
		r = rand.New(rand.NewSource(*s.seed))
	}
	r.Shuffle(len(ts), func(i, j int) { ts[i], ts[j] = ts[j], ts[i] })
}

// commit appends team to the labelled group, removes it from its pot and
// queue, and logs the placement. Placements are final: nothing ever removes
// a team from a group.
func (s *Session) commit(potNum int, t Team, label string) {
	s.groups[label] = append(s.groups[label], t)
	s.pots[potNum-1] = removeTeam(s.pots[potNum-1], t.Name)
	s.queues[potNum-1] = removeTeam(s.queues[potNum-1], t.Name)
	s.log = append(s.log, fmt.Sprintf("Pot%d: %s to Group %s", potNum, t.Name, label))
}

// commitMapping commits a matcher result in ascending group-label order so
// seeded draws stay byte-identical.
func (s *Session) commitMapping(potNum int, mapping map[string]Team) {
	for _, g := range GroupLabels {
		if t, ok := mapping[g]; ok {
			s.commit(potNum, t, g)
		}
	}
}

func (s *Session) fail(potNum int, msg string) *PotFailure {
	s.failure = &PotFailure{Pot: potNum, Message: msg}
	s.log = append(s.log, msg)
	return s.failure
}

func removeTeam(ts []Team, name string) []Team {
	for i, t := range ts {
		if t.Name == name {
			return append(ts[:i:i], ts[i+1:]...)
		}
	}
	return ts
}

func indexByName(ts []Team, name string) int {
	for i, t := range ts {
		if t.Name == name {
			return i
		}
	}
	return -1
}

// Groups returns a copy of the current group assignments, label → teams in
// placement order.
func (s *Session) Groups() map[string][]Team {
	out := make(map[string][]Team, len(s.groups))
	for g, ts := range s.groups {
		out[g] = append([]Team(nil), ts...)
	}
	return out
}

// Pots returns a copy of the remaining (unplaced) teams per pot.
func (s *Session) Pots() [][]Team {
	out := make([][]Team, PotCount)
	for i := range s.pots {
		out[i] = append([]Team(nil), s.pots[i]...)
	}
	return out
}

// Log returns a copy of the placement log.
func (s *Session) Log() []string {
	return append([]string(nil), s.log...)
}

// Failure returns the fatal pot failure, if any.
func (s *Session) Failure() *PotFailure { return s.failure }

// Done reports whether every pot has been fully placed.
func (s *Session) Done() bool {
	for i := range s.pots {
		if len(s.pots[i]) > 0 {
			return false
		}
	}
	return true
}

// View is a read-only snapshot of a session for the presentation layer.
type View struct {
	Groups map[string][]Team `json:"groups"`
	Pots   [][]Team          `json:"pots"`
	Log    []string          `json:"log"`
	Error  string            `json:"error,omitempty"`
	Done   bool              `json:"done"`
}

// Snapshot captures the full externally-visible state of the session.
func (s *Session) Snapshot() View {
	v := View{
		Groups: s.Groups(),
		Pots:   s.Pots(),
		Log:    s.Log(),
		Done:   s.Done(),
	}
	if s.failure != nil {
		v.Error = s.failure.Message
	}
	return v
}
