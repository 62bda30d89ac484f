package problemgen

import "strconv"

// maxNumericTries bounds random offset sampling for numeric distractors.
const maxNumericTries = 30

// choiceSet is an insertion-ordered set of answer options.
type choiceSet struct {
	order []string
	seen  map[string]bool
}

func newChoiceSet() *choiceSet {
	return &choiceSet{seen: make(map[string]bool)}
}

func (s *choiceSet) add(v string) {
	if s.seen[v] {
		return
	}
	s.seen[v] = true
	s.order = append(s.order, v)
}

func (s *choiceSet) len() int { return len(s.order) }

// numericChoices builds the shuffled 4-option set for an integer answer.
// Offsets span 1..7 in either direction, floored at zero; after
// maxNumericTries the set is padded with answer+size+7.
func (g *Generator) numericChoices(answer int) []string {
	want := strconv.Itoa(answer)
	wrong := newChoiceSet()
	for tries := 0; wrong.len() < ChoiceCount-1 && tries < maxNumericTries; tries++ {
		off := g.between(1, 5) + g.rng.IntN(3)
		w := answer + off
		if g.rng.Float64() <= 0.5 {
			w = max(0, answer-off)
		}
		if w != answer && w >= 0 {
			wrong.add(strconv.Itoa(w))
		}
	}
	for wrong.len() < ChoiceCount-1 {
		// Past the first pad these lie beyond the largest offset.
		wrong.add(strconv.Itoa(answer + wrong.len() + 7))
	}
	return g.finishChoices(wrong, want)
}

// finishChoices appends the answer to the distractors and shuffles.
func (g *Generator) finishChoices(wrong *choiceSet, answer string) []string {
	out := make([]string, 0, ChoiceCount)
	out = append(out, wrong.order[:ChoiceCount-1]...)
	out = append(out, answer)
	g.shuffle(out)
	return out
}
