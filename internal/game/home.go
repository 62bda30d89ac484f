package game

import (
	"github.com/abhisek/mathforest/internal/badges"
	"github.com/abhisek/mathforest/internal/persist"
	"github.com/abhisek/mathforest/internal/progression"
	"github.com/abhisek/mathforest/internal/skills"
)

// SkillCard is one skill as shown on the home screen.
type SkillCard struct {
	ID       skills.ID
	Name     string
	Icon     string
	Level    int
	MaxLevel int
	XP       int
	XPNeeded int
	Locked   bool
}

// HomeView is everything the home screen shows.
type HomeView struct {
	Name          string
	Rank          skills.Rank
	TotalLevel    int
	TotalStars    int
	BestStreak    int
	Potions       int
	Skills        []SkillCard
	Badges        []badges.Badge
	Shelf         []badges.Row
	Prizes        int
	BossAvailable bool
	BossDefeated  bool
	SaveStatus    persist.Status
}

// Home builds the home screen view.
func (g *Game) Home() HomeView {
	p := g.Profile()
	v := HomeView{
		Name:          p.Name,
		Rank:          p.Rank(),
		TotalLevel:    skills.TotalLevel(p.SkillLevels),
		TotalStars:    p.TotalStars,
		BestStreak:    p.BestStreak,
		Potions:       p.Potions,
		Badges:        p.Badges,
		Shelf:         badges.Shelf(p.Badges),
		Prizes:        badges.Prizes(len(p.Badges)),
		BossAvailable: p.BossAvailable(),
		BossDefeated:  p.BossDefeats[progression.DragonBoss],
		SaveStatus:    g.gw.Status(),
	}
	for _, sk := range skills.All() {
		lvl := p.Level(sk.ID)
		v.Skills = append(v.Skills, SkillCard{
			ID:       sk.ID,
			Name:     sk.Name,
			Icon:     sk.Icon,
			Level:    lvl,
			MaxLevel: sk.MaxLevel,
			XP:       p.XP(sk.ID),
			XPNeeded: skills.XPNeeded(lvl),
			Locked:   !p.SkillOpen(sk.ID),
		})
	}
	return v
}
