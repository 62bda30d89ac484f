package problemgen

import (
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/abhisek/mathforest/internal/skills"
)

// Generator produces problems from level-indexed rules.
// It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Generator using rng as its random source. A nil rng is
// replaced by a time-seeded source.
func New(rng *rand.Rand) *Generator {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>17|1))
	}
	return &Generator{rng: rng}
}

// NewSeeded creates a deterministic Generator. Used by tests.
func NewSeeded(seed uint64) *Generator {
	return New(rand.New(rand.NewPCG(seed, seed+1)))
}

// Generate produces a problem for skill at level. Unknown skills fall back
// to a trivial addition problem.
func (g *Generator) Generate(skill skills.ID, level int) *Problem {
	g.mu.Lock()
	defer g.mu.Unlock()

	if level < 0 {
		level = 0
	}

	var p *Problem
	switch skill {
	case skills.Addition:
		p = g.addition(level)
	case skills.Subtraction:
		p = g.subtraction(level)
	case skills.Multiplication:
		p = g.multiplication(level)
	case skills.WordProblems:
		p = g.wordProblem(level)
	case skills.TellingTime:
		p = g.timeProblem(level)
		p.Skill = skill
		p.Level = level
		return p
	default:
		p = &Problem{
			Text:     "1 + 1 = ?",
			Value:    2,
			Hint:     "Count!",
			Operands: []int{1, 1},
		}
	}

	p.Skill = skill
	p.Level = level
	p.Kind = KindMath
	p.Answer = strconv.Itoa(p.Value)
	p.Choices = g.numericChoices(p.Value)
	return p
}

// between returns a uniform integer in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.IntN(hi-lo+1)
}

// pick returns a uniform element of xs.
func pick[T any](g *Generator, xs []T) T {
	return xs[g.rng.IntN(len(xs))]
}

func (g *Generator) shuffle(xs []string) {
	g.rng.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
}
