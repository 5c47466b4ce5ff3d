// Package overlay owns the global search overlay: its open/closed state, the
// shortcut that opens it, and the background scroll lock held while it is open.
package overlay

import (
	"runtime"
	"strings"

	"github.com/jask/catalog/internal/keyboard"
)

// State is the overlay's lifecycle state.
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

// Locker is the background scroll lock the controller holds while open.
type Locker interface {
	Lock()
	Unlock()
}

// Subscriber is where the controller installs its key listener.
type Subscriber interface {
	Subscribe(keyboard.Listener) (unsubscribe func())
}

// Controller is the overlay state machine. All methods run on the UI
// goroutine.
type Controller struct {
	state       State
	lock        Locker
	shortcut    string
	unsubscribe func()
	observers   []func(State)
}

type Option func(*Controller)

// WithScrollLock replaces the process-wide background scroll lock.
func WithScrollLock(l Locker) Option {
	return func(c *Controller) { c.lock = l }
}

// WithModifier sets the modifier combined with "k" ("ctrl", "alt", or "auto"
// for the platform default).
func WithModifier(mod string) Option {
	return func(c *Controller) { c.shortcut = Shortcut(mod, runtime.GOOS) }
}

func New(opts ...Option) *Controller {
	c := &Controller{
		lock:     &background,
		shortcut: Shortcut("auto", runtime.GOOS),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PrimaryModifier returns the platform's primary shortcut modifier. Terminals
// deliver the macOS meta/option key as alt.
func PrimaryModifier(goos string) string {
	if goos == "darwin" {
		return "alt"
	}
	return "ctrl"
}

// Shortcut returns the normalized key name that opens the overlay.
func Shortcut(mod, goos string) string {
	mod = strings.ToLower(strings.TrimSpace(mod))
	if mod == "" || mod == "auto" {
		mod = PrimaryModifier(goos)
	}
	return keyboard.Normalize(mod + "+k")
}

func (c *Controller) State() State { return c.state }

func (c *Controller) IsOpen() bool { return c.state == Open }

// Shortcut returns the key name that opens the overlay.
func (c *Controller) Shortcut() string { return c.shortcut }

// OnChange registers fn to run after every state transition.
func (c *Controller) OnChange(fn func(State)) {
	if fn != nil {
		c.observers = append(c.observers, fn)
	}
}

// Open moves Closed to Open and takes the scroll lock. Opening an open
// overlay does nothing.
func (c *Controller) Open() {
	if c.state == Open {
		return
	}
	c.state = Open
	c.lock.Lock()
	c.notify()
}

// Close moves Open to Closed and releases the scroll lock. Closing a closed
// overlay does nothing.
func (c *Controller) Close() {
	if c.state == Closed {
		return
	}
	c.state = Closed
	c.lock.Unlock()
	c.notify()
}

// Mount installs the key listener. Mounting an already mounted controller
// does not add a second listener.
func (c *Controller) Mount(sub Subscriber) {
	if c.unsubscribe != nil {
		return
	}
	c.unsubscribe = sub.Subscribe(c.handleKey)
}

// Mounted reports whether the key listener is installed.
func (c *Controller) Mounted() bool { return c.unsubscribe != nil }

// Teardown removes the key listener and releases the scroll lock if the
// overlay is still open. It is safe to call more than once.
func (c *Controller) Teardown() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.Close()
}

func (c *Controller) handleKey(ev *keyboard.Event) {
	switch ev.Key {
	case c.shortcut:
		if ev.FocusLocked && c.state == Closed {
			return
		}
		ev.PreventDefault()
		c.Open()
	case "esc":
		if c.state != Open {
			return
		}
		ev.PreventDefault()
		c.Close()
	}
}

func (c *Controller) notify() {
	for _, fn := range c.observers {
		fn(c.state)
	}
}
