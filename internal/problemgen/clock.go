package problemgen

import "fmt"

// ElapsedLevel is the first time level that asks about elapsed time
// instead of reading a clock face.
const ElapsedLevel = 5

var (
	fiveMinuteAnswers = []int{5, 10, 20, 25, 35, 40, 50, 55}
	fiveMinuteAll     = []int{5, 10, 15, 20, 25, 30, 35, 40, 45, 50, 55}
	quarterHours      = []int{0, 15, 30, 45}
	elapsedSteps      = []int{15, 30, 45, 60}
)

// maxDistractorTries bounds random distractor sampling before falling back
// to walking the clock.
const maxDistractorTries = 200

func (g *Generator) hour() int { return g.between(1, 12) }

func (g *Generator) timeProblem(level int) *Problem {
	if level >= ElapsedLevel {
		return g.elapsedProblem()
	}

	h := g.hour()
	var m int
	var hint string
	wrong := newChoiceSet()

	switch level {
	case 0:
		hint = "The SHORT hand points to the hour. The LONG hand points straight up at 12, so it's o'clock!"
		g.fillTimes(wrong, ClockTime{h, 0}, func() string { return FormatTime(g.hour(), 0) })
	case 1:
		m = 30
		hint = "When the LONG hand points straight DOWN at 6, it's half past. The SHORT hand sits between two numbers!"
		wrong.add(FormatTime(h, 0))
		g.fillTimes(wrong, ClockTime{h, m}, func() string { return FormatTime(g.hour(), 30) })
	case 2:
		m = pick(g, []int{15, 45})
		if m == 15 {
			hint = "Long hand at 3 means quarter past. Count by 5s from 12: 5, 10, 15!"
			wrong.add(FormatTime(h, 45))
		} else {
			hint = "Long hand at 9 means quarter to. Almost a full trip around!"
			wrong.add(FormatTime(h, 15))
		}
		g.fillTimes(wrong, ClockTime{h, m}, func() string { return FormatTime(g.hour(), pick(g, []int{15, 45})) })
	case 3:
		m = pick(g, fiveMinuteAnswers)
		hint = fmt.Sprintf("Each number on the clock is 5 minutes. Count by 5s from 12! The long hand is at %d, so %d minutes.", m/5, m)
		g.fillTimes(wrong, ClockTime{h, m}, func() string { return FormatTime(g.hour(), pick(g, fiveMinuteAll)) })
	default:
		m = g.rng.IntN(60)
		hint = "Find the number the long hand just passed, then count the small marks. Each small mark is 1 minute!"
		g.fillTimes(wrong, ClockTime{h, m}, func() string { return FormatTime(g.hour(), g.rng.IntN(60)) })
	}

	answer := FormatTime(h, m)
	return &Problem{
		Text:    "What time does this clock show?",
		Answer:  answer,
		Hint:    hint,
		Choices: g.finishChoices(wrong, answer),
		Kind:    KindClock,
		Clock:   &ClockTime{Hour: h, Minute: m},
	}
}

func (g *Generator) elapsedProblem() *Problem {
	start := ClockTime{Hour: g.hour(), Minute: pick(g, quarterHours)}
	step := pick(g, elapsedSteps)
	end := AddMinutes(start, step)
	answer := end.String()

	wrong := newChoiceSet()
	g.fillTimes(wrong, end, func() string { return FormatTime(g.hour(), pick(g, quarterHours)) })

	return &Problem{
		Text:     fmt.Sprintf("It's %s now. What time will it be in %d minutes?", start, step),
		Answer:   answer,
		Hint:     fmt.Sprintf("Start at %s and count forward %d minutes!", start, step),
		Choices:  g.finishChoices(wrong, answer),
		Kind:     KindElapsed,
		Clock:    &start,
		Operands: []int{step},
	}
}

// AddMinutes advances a 12-hour clock reading; 12 wraps to 1.
func AddMinutes(t ClockTime, minutes int) ClockTime {
	m := t.Minute + minutes
	h := t.Hour
	for m >= 60 {
		m -= 60
		h = h%12 + 1
	}
	return ClockTime{Hour: h, Minute: m}
}

// fillTimes samples distractors until three distinct non-answer times exist.
// If sampling stalls, the fallback walks the clock hour by hour from the
// answer so the set always completes.
func (g *Generator) fillTimes(wrong *choiceSet, correct ClockTime, sample func() string) {
	answer := correct.String()
	for tries := 0; wrong.len() < 3 && tries < maxDistractorTries; tries++ {
		if w := sample(); w != answer {
			wrong.add(w)
		}
	}
	t := correct
	for wrong.len() < 3 {
		t.Hour = t.Hour%12 + 1
		if w := t.String(); w != answer {
			wrong.add(w)
		}
	}
}
