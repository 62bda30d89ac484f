package session

import (
	"time"

	"github.com/abhisek/mathforest/internal/progression"
)

// timerTickMsg is sent every second to refresh the elapsed time.
type timerTickMsg time.Time

// claimedMsg reports the badge claim once its save has returned.
type claimedMsg struct {
	Events []progression.Event
	Err    error
}
