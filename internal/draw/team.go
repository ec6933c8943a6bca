package draw

// Team is a single entrant. Name doubles as the unique identifier across the
// whole 48-team field.
type Team struct {
	Name          string `json:"name"`
	Confederation string `json:"confederation"`
	Pot           int    `json:"pot"`
}

// GroupLabels is the fixed, ordered set of group identifiers.
var GroupLabels = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"}

const (
	GroupCapacity = 4
	PotCount      = 4
	PotSize       = 12

	// UEFA is the privileged confederation: up to two per group, everyone
	// else is capped at one.
	UEFA         = "UEFA"
	maxUEFA      = 2
	maxPerConfed = 1
)

type hostSlot struct {
	name  string
	group string
}

// Hosts are placed first, in this order, into their pre-assigned groups.
var hostSlots = []hostSlot{
	{"Mexico", "A"},
	{"United States", "B"},
	{"Canada", "D"},
}
