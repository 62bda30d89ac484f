package persist

import (
	"github.com/abhisek/mathforest/internal/badges"
	"github.com/abhisek/mathforest/internal/progression"
	"github.com/abhisek/mathforest/internal/skills"
	"github.com/abhisek/mathforest/internal/store"
)

// ToRecord converts an in-memory profile into the persisted record for id.
func ToRecord(id string, p progression.Profile) *store.ProfileRecord {
	rec := &store.ProfileRecord{
		ID:          id,
		Name:        p.Name,
		SkillLevels: make(map[string]int, len(p.SkillLevels)),
		SkillXP:     make(map[string]int, len(p.SkillXP)),
		TotalStars:  p.TotalStars,
		BestStreak:  p.BestStreak,
		Potions:     p.Potions,
		Badges:      append([]badges.Badge{}, p.Badges...),
		BossDefeats: make(map[string]bool, len(p.BossDefeats)),
	}
	for k, v := range p.SkillLevels {
		rec.SkillLevels[string(k)] = v
	}
	for k, v := range p.SkillXP {
		rec.SkillXP[string(k)] = v
	}
	for k, v := range p.BossDefeats {
		rec.BossDefeats[k] = v
	}
	return rec
}

// FromRecord converts a persisted record into a normalized profile. Missing
// skills default to 0 and out-of-range levels are clamped.
func FromRecord(rec *store.ProfileRecord) progression.Profile {
	p := progression.Profile{
		Name:        rec.Name,
		SkillLevels: make(map[skills.ID]int, len(rec.SkillLevels)),
		SkillXP:     make(map[skills.ID]int, len(rec.SkillXP)),
		TotalStars:  rec.TotalStars,
		BestStreak:  rec.BestStreak,
		Potions:     rec.Potions,
		Badges:      append([]badges.Badge{}, rec.Badges...),
		BossDefeats: make(map[string]bool, len(rec.BossDefeats)),
	}
	for k, v := range rec.SkillLevels {
		p.SkillLevels[skills.ID(k)] = v
	}
	for k, v := range rec.SkillXP {
		p.SkillXP[skills.ID(k)] = v
	}
	for k, v := range rec.BossDefeats {
		p.BossDefeats[k] = v
	}
	p.Normalize()
	return p
}
