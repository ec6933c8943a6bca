package draw

// DefaultPots returns the standard 48-team field, pre-seeded into the four
// pots. Callers get fresh copies; mutating the result never affects later
// calls.
func DefaultPots() [][]Team {
	pots := [][]Team{
		{
			{Name: "Mexico", Confederation: "CONCACAF"},
			{Name: "Canada", Confederation: "CONCACAF"},
			{Name: "United States", Confederation: "CONCACAF"},
			{Name: "Brazil", Confederation: "CONMEBOL"},
			{Name: "Argentina", Confederation: "CONMEBOL"},
			{Name: "France", Confederation: "UEFA"},
			{Name: "England", Confederation: "UEFA"},
			{Name: "Spain", Confederation: "UEFA"},
			{Name: "Portugal", Confederation: "UEFA"},
			{Name: "Belgium", Confederation: "UEFA"},
			{Name: "Netherlands", Confederation: "UEFA"},
			{Name: "Croatia", Confederation: "UEFA"},
		},
		{
			{Name: "Germany", Confederation: "UEFA"},
			{Name: "Morocco", Confederation: "CAF"},
			{Name: "Colombia", Confederation: "CONMEBOL"},
			{Name: "Uruguay", Confederation: "CONMEBOL"},
			{Name: "Japan", Confederation: "AFC"},
			{Name: "Ecuador", Confederation: "CONMEBOL"},
			{Name: "Switzerland", Confederation: "UEFA"},
			{Name: "Senegal", Confederation: "CAF"},
			{Name: "Iran", Confederation: "AFC"},
			{Name: "Denmark", Confederation: "UEFA"},
			{Name: "South Korea", Confederation: "AFC"},
			{Name: "Australia", Confederation: "AFC"},
		},
		{
			{Name: "Austria", Confederation: "UEFA"},
			{Name: "Panama", Confederation: "CONCACAF"},
			{Name: "Norway", Confederation: "UEFA"},
			{Name: "Egypt", Confederation: "CAF"},
			{Name: "Algeria", Confederation: "CAF"},
			{Name: "Paraguay", Confederation: "CONMEBOL"},
			{Name: "Ivory Coast", Confederation: "CAF"},
			{Name: "Tunisia", Confederation: "CAF"},
			{Name: "Costa Rica", Confederation: "CONCACAF"},
			{Name: "Uzbekistan", Confederation: "AFC"},
			{Name: "Saudi Arabia", Confederation: "AFC"},
			{Name: "South Africa", Confederation: "CAF"},
		},
		{
			{Name: "Qatar", Confederation: "AFC"},
			{Name: "Jamaica", Confederation: "CONCACAF"},
			{Name: "Jordan", Confederation: "AFC"},
			{Name: "Ghana", Confederation: "CAF"},
			{Name: "New Zealand", Confederation: "OFC"},
			{Name: "Cape Verde", Confederation: "CAF"},
			{Name: "Italy", Confederation: "UEFA"},
			{Name: "Turkey", Confederation: "UEFA"},
			{Name: "Ukraine", Confederation: "UEFA"},
			{Name: "Scotland", Confederation: "UEFA"},
			{Name: "Bolivia", Confederation: "CONMEBOL"},
			{Name: "Cameroon", Confederation: "CAF"},
		},
	}
	for i, pot := range pots {
		for j := range pot {
			pots[i][j].Pot = i + 1
		}
	}
	return pots
}
