package skills

// Rank is the learner title earned from the sum of all skill levels.
type Rank struct {
	Title string
	Icon  string
}

var ranks = []struct {
	below int
	rank  Rank
}{
	{4, Rank{"Apprentice", "🌱"}},
	{10, Rank{"Enchanter", "🪄"}},
	{18, Rank{"Sorcerer", "🔮"}},
	{26, Rank{"Archmage", "🧙"}},
}

// RankFor returns the rank for a total level.
func RankFor(totalLevel int) Rank {
	for _, r := range ranks {
		if totalLevel < r.below {
			return r.rank
		}
	}
	return Rank{"Grand Wizard", "👑"}
}

// TotalLevel sums levels across the catalog.
func TotalLevel(levels map[ID]int) int {
	total := 0
	for _, id := range IDs() {
		total += levels[id]
	}
	return total
}
