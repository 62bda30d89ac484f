package boss

import "sync/atomic"

var hitMessages = []string{
	"Direct hit! 💥",
	"Critical strike! ⚔️",
	"The dragon stumbles! 🎯",
	"Powerful blow! 💫",
	"Super effective! 🌟",
}

var attackMessages = []string{
	"The dragon breathes fire! 🔥",
	"The dragon swipes its tail! 💨",
	"The dragon roars! 🌋",
	"A fireball flies past! ☄️",
}

var messageSeq atomic.Uint64

// Messages rotate so back-to-back strikes read differently.
func (c *Controller) hitMessage() string {
	return hitMessages[messageSeq.Add(1)%uint64(len(hitMessages))]
}

func (c *Controller) attackMessage() string {
	return attackMessages[messageSeq.Add(1)%uint64(len(attackMessages))]
}
