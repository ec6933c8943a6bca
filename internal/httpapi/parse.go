package httpapi

import (
	"fmt"
	"strings"

	"github.com/groupstage/draw-backend/internal/draw"
)

// ParsePots converts one text block per pot into engine teams. Each block
// holds one team per line as "Name, Confederation"; blank lines are ignored.
func ParsePots(blocks []string) ([][]draw.Team, error) {
	if len(blocks) != draw.PotCount {
		return nil, fmt.Errorf("got %d pots, want %d", len(blocks), draw.PotCount)
	}
	pots := make([][]draw.Team, len(blocks))
	for i, block := range blocks {
		teams, err := parsePotText(block, i+1)
		if err != nil {
			return nil, err
		}
		pots[i] = teams
	}
	return pots, nil
}

func parsePotText(text string, potNum int) ([]draw.Team, error) {
	var teams []draw.Team
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, rest, ok := strings.Cut(line, ",")
		if !ok {
			return nil, fmt.Errorf("pot %d: invalid line %q (expected \"Name, Confederation\")", potNum, line)
		}
		// Anything after a second comma is ignored, matching the lenient
		// paste-from-spreadsheet format.
		confed, _, _ := strings.Cut(rest, ",")
		name = strings.TrimSpace(name)
		confed = strings.TrimSpace(confed)
		if name == "" || confed == "" {
			return nil, fmt.Errorf("pot %d: invalid line %q (expected \"Name, Confederation\")", potNum, line)
		}
		teams = append(teams, draw.Team{Name: name, Confederation: confed, Pot: potNum})
	}
	return teams, nil
}
