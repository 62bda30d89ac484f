package problemgen

import "github.com/abhisek/mathforest/internal/skills"

// SelectBossProblem samples a problem one level below the learner's level
// in a uniformly chosen math skill they have started. With nothing started
// it falls back to level-1 addition.
func (g *Generator) SelectBossProblem(levels map[skills.ID]int) *Problem {
	var started []skills.ID
	for _, id := range skills.Math() {
		if levels[id] > 0 {
			started = append(started, id)
		}
	}
	if len(started) == 0 {
		return g.Generate(skills.Addition, 1)
	}

	g.mu.Lock()
	id := pick(g, started)
	g.mu.Unlock()

	return g.Generate(id, max(0, levels[id]-1))
}
