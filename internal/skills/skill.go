package skills

// ID identifies a practice skill.
type ID string

const (
	Addition       ID = "addition"
	Subtraction    ID = "subtraction"
	Multiplication ID = "multiplication"
	WordProblems   ID = "wordProblems"
	TellingTime    ID = "tellingTime"
)

// Skill is a single entry of the fixed skill catalog.
type Skill struct {
	ID       ID
	Name     string
	Icon     string
	MaxLevel int

	// Locked skills are hidden until an unlock condition is met.
	// TellingTime is the only locked skill; defeating the dragon opens it.
	Locked bool
}

var catalog = []Skill{
	{ID: Addition, Name: "Addition Spells", Icon: "🪄", MaxLevel: 8},
	{ID: Subtraction, Name: "Subtraction Charms", Icon: "🔮", MaxLevel: 8},
	{ID: Multiplication, Name: "Multiply Enchantments", Icon: "🧪", MaxLevel: 6},
	{ID: WordProblems, Name: "Story Quests", Icon: "🏰", MaxLevel: 6},
	{ID: TellingTime, Name: "Telling Time", Icon: "🕐", MaxLevel: 6, Locked: true},
}

// All returns every skill in display order.
func All() []Skill {
	out := make([]Skill, len(catalog))
	copy(out, catalog)
	return out
}

// IDs returns the skill IDs in display order.
func IDs() []ID {
	ids := make([]ID, len(catalog))
	for i, s := range catalog {
		ids[i] = s.ID
	}
	return ids
}

// Math returns the skills that feed the boss battle (everything but time).
func Math() []ID {
	return []ID{Addition, Subtraction, Multiplication, WordProblems}
}

// Get looks up a skill by ID.
func Get(id ID) (Skill, bool) {
	for _, s := range catalog {
		if s.ID == id {
			return s, true
		}
	}
	return Skill{}, false
}

// Valid reports whether id names a catalog skill.
func Valid(id ID) bool {
	_, ok := Get(id)
	return ok
}

// MaxLevel returns the level cap for id, or 0 for unknown skills.
func MaxLevel(id ID) int {
	s, _ := Get(id)
	return s.MaxLevel
}

// DisplayName returns the human-readable name for id.
func DisplayName(id ID) string {
	if s, ok := Get(id); ok {
		return s.Name
	}
	return string(id)
}

// XPNeeded returns the XP required to leave level.
func XPNeeded(level int) int {
	return 8 + 4*level
}

// ClampLevel bounds level to [0, MaxLevel(id)].
func ClampLevel(id ID, level int) int {
	if level < 0 {
		return 0
	}
	if m := MaxLevel(id); level > m {
		return m
	}
	return level
}
