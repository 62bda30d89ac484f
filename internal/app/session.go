package app

import (
	"context"
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathforest/internal/game"
	"github.com/abhisek/mathforest/internal/persist"
)

// saveStatusMsg wakes the program to redraw the save indicator.
type saveStatusMsg struct{}

// current tracks the signed-in learner's game. It is written from login
// commands and read from View, hence the lock.
type current struct {
	mu    sync.Mutex
	g     *game.Game
	unsub func()
	send  func(tea.Msg)
}

func (c *current) attach(g *game.Game) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detachLocked()
	c.g = g
	c.unsub = g.Gateway().OnStatus(func(persist.Status) {
		c.mu.Lock()
		send := c.send
		c.mu.Unlock()
		// Saves can fire from inside Update, where a blocking Send would
		// never be received.
		if send != nil {
			go send(saveStatusMsg{})
		}
	})
}

// detach closes the current game, flushing any pending save.
func (c *current) detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detachLocked()
}

func (c *current) detachLocked() {
	if c.unsub != nil {
		c.unsub()
		c.unsub = nil
	}
	if c.g != nil {
		c.g.Close(context.Background())
		c.g = nil
	}
}

func (c *current) setSender(send func(tea.Msg)) {
	c.mu.Lock()
	c.send = send
	c.mu.Unlock()
}

// stats returns the header counters for the current game.
func (c *current) stats() (stars, potions int, status persist.Status, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.g == nil {
		return 0, 0, persist.StatusIdle, false
	}
	p := c.g.Profile()
	return p.TotalStars, p.Potions, c.g.SaveStatus(), true
}
