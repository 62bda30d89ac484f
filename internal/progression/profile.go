package progression

import (
	"github.com/abhisek/mathforest/internal/badges"
	"github.com/abhisek/mathforest/internal/skills"
)

// DragonBoss is the ID of the single boss encounter.
const DragonBoss = "mathDragon"

// Profile is the learner's persisted progress.
type Profile struct {
	Name        string
	SkillLevels map[skills.ID]int
	SkillXP     map[skills.ID]int
	TotalStars  int
	BestStreak  int
	Potions     int
	Badges      []badges.Badge
	BossDefeats map[string]bool
}

// DefaultProfile returns a fresh profile with every skill at level 0.
func DefaultProfile() Profile {
	p := Profile{
		SkillLevels: make(map[skills.ID]int),
		SkillXP:     make(map[skills.ID]int),
		Badges:      []badges.Badge{},
		BossDefeats: make(map[string]bool),
	}
	for _, id := range skills.IDs() {
		p.SkillLevels[id] = 0
		p.SkillXP[id] = 0
	}
	return p
}

// Clone returns a deep copy.
func (p Profile) Clone() Profile {
	out := p
	out.SkillLevels = make(map[skills.ID]int, len(p.SkillLevels))
	for k, v := range p.SkillLevels {
		out.SkillLevels[k] = v
	}
	out.SkillXP = make(map[skills.ID]int, len(p.SkillXP))
	for k, v := range p.SkillXP {
		out.SkillXP[k] = v
	}
	out.BossDefeats = make(map[string]bool, len(p.BossDefeats))
	for k, v := range p.BossDefeats {
		out.BossDefeats[k] = v
	}
	out.Badges = append([]badges.Badge{}, p.Badges...)
	return out
}

// Normalize fills missing skills and clamps levels and XP into range.
// Unknown skill keys are dropped.
func (p *Profile) Normalize() {
	levels := make(map[skills.ID]int, len(skills.IDs()))
	xp := make(map[skills.ID]int, len(skills.IDs()))
	for _, id := range skills.IDs() {
		levels[id] = skills.ClampLevel(id, p.SkillLevels[id])
		xp[id] = min(max(0, p.SkillXP[id]), skills.XPNeeded(levels[id]))
	}
	p.SkillLevels = levels
	p.SkillXP = xp
	if p.Badges == nil {
		p.Badges = []badges.Badge{}
	}
	if p.BossDefeats == nil {
		p.BossDefeats = make(map[string]bool)
	}
	p.TotalStars = max(0, p.TotalStars)
	p.BestStreak = max(0, p.BestStreak)
	p.Potions = max(0, p.Potions)
}

// Level returns the current level for id.
func (p Profile) Level(id skills.ID) int { return p.SkillLevels[id] }

// XP returns the XP accumulated toward the next level of id.
func (p Profile) XP(id skills.ID) int { return p.SkillXP[id] }

// TimeUnlocked reports whether telling time is open for practice.
func (p Profile) TimeUnlocked() bool { return p.BossDefeats[DragonBoss] }

// SkillOpen reports whether id can be practiced.
func (p Profile) SkillOpen(id skills.ID) bool {
	s, ok := skills.Get(id)
	if !ok {
		return false
	}
	return !s.Locked || p.TimeUnlocked()
}

// BossAvailable reports whether the dragon can be challenged: not yet
// defeated, and some math skill at level 2 or above.
func (p Profile) BossAvailable() bool {
	if p.BossDefeats[DragonBoss] {
		return false
	}
	for _, id := range skills.Math() {
		if p.SkillLevels[id] >= 2 {
			return true
		}
	}
	return false
}

// Rank returns the learner's title.
func (p Profile) Rank() skills.Rank {
	return skills.RankFor(skills.TotalLevel(p.SkillLevels))
}
