package battle

import (
	"github.com/abhisek/mathforest/internal/boss"
	"github.com/abhisek/mathforest/internal/game"
)

// introDoneMsg ends the intro and starts the fight.
type introDoneMsg struct{}

// strikeMsg carries a graded answer.
type strikeMsg struct {
	Strike *boss.Strike
	View   game.BossView
	Err    error
}

// resumeMsg shows the next problem, or the result screen, after a strike.
type resumeMsg struct{}
