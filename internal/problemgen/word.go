package problemgen

import "fmt"

var fairyCreatures = []string{"🧚", "🧚‍♀️", "🦄", "🐉", "🏰", "👸", "🌙", "⭐", "🪄", "✨"}

type wordTemplate func(g *Generator, creature string) *Problem

// wordTemplates are ordered easiest first; level+2 of them are eligible.
var wordTemplates = []wordTemplate{
	func(g *Generator, c string) *Problem {
		n1, n2 := g.between(2, 6), g.between(1, 5)
		return &Problem{
			Text:     fmt.Sprintf("%s A fairy has %d crystals and finds %d more. How many now?", c, n1, n2),
			Value:    n1 + n2,
			Hint:     fmt.Sprintf("%d + %d = ?", n1, n2),
			Operands: []int{n1, n2},
		}
	},
	func(g *Generator, c string) *Problem {
		n1 := g.between(4, 9)
		n2 := g.between(1, n1-1)
		return &Problem{
			Text:     fmt.Sprintf("%s Dragon had %d coins, gave %d away. How many left?", c, n1, n2),
			Value:    n1 - n2,
			Hint:     fmt.Sprintf("%d − %d = ?", n1, n2),
			Operands: []int{n1, n2},
		}
	},
	func(g *Generator, c string) *Problem {
		n1, n2 := g.between(5, 12), g.between(3, 10)
		return &Problem{
			Text:     fmt.Sprintf("%s Wizard picked %d mushrooms, then %d more. Total?", c, n1, n2),
			Value:    n1 + n2,
			Hint:     fmt.Sprintf("%d + %d = ?", n1, n2),
			Operands: []int{n1, n2},
		}
	},
	func(g *Generator, c string) *Problem {
		// The start always exceeds the largest possible total given away (6+3).
		n1, n2, n3 := g.between(10, 19), g.between(2, 6), g.between(1, 3)
		return &Problem{
			Text:     fmt.Sprintf("%s Unicorn had %d flowers. Gave %d to bunny, %d to owl. How many left?", c, n1, n2, n3),
			Value:    n1 - n2 - n3,
			Hint:     fmt.Sprintf("%d − %d = %d, then − %d = ?", n1, n2, n1-n2, n3),
			Operands: []int{n1, n2, n3},
		}
	},
	func(g *Generator, c string) *Problem {
		n1, n2 := g.between(2, 5), g.between(2, 6)
		return &Problem{
			Text:     fmt.Sprintf("%s Queen has %d chests with %d gems each. How many?", c, n1, n2),
			Value:    n1 * n2,
			Hint:     fmt.Sprintf("%d × %d = ?", n1, n2),
			Operands: []int{n1, n2},
		}
	},
	func(g *Generator, c string) *Problem {
		n1, n2, n3 := g.between(3, 7), g.between(3, 7), g.between(2, 5)
		return &Problem{
			Text:     fmt.Sprintf("%s Bakery has %d cupcakes, %d cookies, %d cakes. How many?", c, n1, n2, n3),
			Value:    n1 + n2 + n3,
			Hint:     fmt.Sprintf("%d + %d = %d, then + %d = ?", n1, n2, n1+n2, n3),
			Operands: []int{n1, n2, n3},
		}
	},
}

// eligibleWordTemplates returns how many templates are open at level.
func eligibleWordTemplates(level int) int {
	return min(level+2, len(wordTemplates))
}

func (g *Generator) wordProblem(level int) *Problem {
	creature := pick(g, fairyCreatures)
	t := wordTemplates[g.rng.IntN(eligibleWordTemplates(level))]
	return t(g, creature)
}
