package badges

import "time"

// DateLayout is the format of a badge's persisted earned date.
const DateLayout = "2006-01-02"

// Badge is earned once per completed practice session.
type Badge struct {
	Icon    string `json:"icon"`
	Name    string `json:"name"`
	Date    string `json:"date"`
	Skill   string `json:"skill"`
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
}

// New builds the badge at position index of the ledger. The icon and name
// cycle through the palette.
func New(index int, skill string, correct, total int, earned time.Time) Badge {
	return Badge{
		Icon:    Icon(index),
		Name:    Name(index),
		Date:    earned.Format(DateLayout),
		Skill:   skill,
		Correct: correct,
		Total:   total,
	}
}

// PerPrize is the number of badges that fill one prize row.
const PerPrize = 5

// IsPrizeMilestone reports whether a ledger of n badges just filled a row.
func IsPrizeMilestone(n int) bool {
	return n > 0 && n%PerPrize == 0
}

// Prizes returns the number of prizes unlocked by n badges.
func Prizes(n int) int {
	return n / PerPrize
}
