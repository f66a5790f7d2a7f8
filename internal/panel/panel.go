// Package panel holds the open/closed state of the mobile navigation panel.
package panel

import "sync"

// State is the disclosure state of the panel.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Notifier emits a signal before every page transition.
type Notifier interface {
	OnNavigationStart(h func(target string)) (unsubscribe func())
}

// Controller is a two-state machine: Toggle flips it, any navigation-start
// signal forces it closed. The subscription is taken in Mount and released in
// Unmount, once each.
type Controller struct {
	mu          sync.Mutex
	state       State
	unsubscribe func()
	mounted     bool
}

// Mount returns a closed Controller subscribed to src.
func Mount(src Notifier) *Controller {
	c := &Controller{state: Closed}
	if src != nil {
		c.unsubscribe = src.OnNavigationStart(c.onNavigationStart)
		c.mounted = true
	}
	return c
}

func (c *Controller) onNavigationStart(string) {
	c.mu.Lock()
	if c.mounted {
		c.state = Closed
	}
	c.mu.Unlock()
}

// Toggle flips the state and returns the new one.
func (c *Controller) Toggle() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Open {
		c.state = Closed
	} else {
		c.state = Open
	}
	return c.state
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsOpen reports whether the panel is expanded.
func (c *Controller) IsOpen() bool { return c.State() == Open }

// Mounted reports whether the controller still holds its subscription.
func (c *Controller) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted
}

// Unmount releases the navigation subscription. Later calls do nothing.
func (c *Controller) Unmount() {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return
	}
	c.mounted = false
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}
