package badges

// minShelfSlots is the smallest grid shown, two empty rows for a new learner.
const minShelfSlots = 10

// Row is one line of the badge shelf.
type Row struct {
	// Slots holds PerPrize entries; nil marks an empty slot.
	Slots []*Badge

	// Complete is true once every slot is filled. The row's prize is then unlocked.
	Complete bool

	PrizeIcon string
}

// Shelf lays the ledger out in rows of PerPrize, always leaving at least one
// empty slot after the last badge so the next reward is visible.
func Shelf(ledger []Badge) []Row {
	n := len(ledger)
	slots := (n + PerPrize) / PerPrize * PerPrize // ceil((n+1)/5)*5
	slots = max(slots, minShelfSlots)

	rows := make([]Row, 0, slots/PerPrize)
	for start := 0; start < slots; start += PerPrize {
		row := Row{
			Slots:     make([]*Badge, PerPrize),
			Complete:  start+PerPrize <= n,
			PrizeIcon: PrizeIcon(start / PerPrize),
		}
		for i := 0; i < PerPrize; i++ {
			if start+i < n {
				row.Slots[i] = &ledger[start+i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}
