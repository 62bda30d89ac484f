package session

import (
	"time"

	"github.com/abhisek/mathforest/internal/progression"
	"github.com/abhisek/mathforest/internal/skills"
)

// Summary holds the data displayed when a session ends.
type Summary struct {
	Skill          skills.ID
	SkillName      string
	Duration       time.Duration
	TotalQuestions int
	TotalCorrect   int
	Accuracy       float64
	LevelBefore    int
	LevelAfter     int
	LevelUps       int
	Demotions      int
	Claimed        bool
}

// BuildSummary creates a Summary from the session and the current profile.
func BuildSummary(s *State, p progression.Profile, now time.Time) *Summary {
	sum := &Summary{
		Skill:          s.Skill,
		SkillName:      skills.DisplayName(s.Skill),
		Duration:       s.Elapsed(now),
		TotalQuestions: s.Tally.Total,
		TotalCorrect:   s.Tally.Correct,
		Accuracy:       s.Accuracy(),
		LevelBefore:    s.LevelAtStart,
		LevelAfter:     p.Level(s.Skill),
		Claimed:        s.Claimed,
	}
	for _, e := range s.Events {
		switch e.Kind {
		case progression.EventLevelUp:
			sum.LevelUps++
		case progression.EventDemoted:
			sum.Demotions++
		}
	}
	return sum
}
