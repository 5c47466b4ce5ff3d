// Package keyboard fans terminal key presses out to application-wide
// listeners before the focused view handles them.
package keyboard

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Event is one key press as seen by listeners.
type Event struct {
	Key         string
	Msg         tea.KeyMsg
	FocusLocked bool

	defaultPrevented bool
}

// PreventDefault stops the application's own handling of the key.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

type Listener func(*Event)

// Hub is the single process-wide key subscription point. It is only touched
// from the bubbletea update goroutine.
type Hub struct {
	nextID    int
	listeners []entry
}

type entry struct {
	id int
	fn Listener
}

func NewHub() *Hub {
	return &Hub{}
}

// Subscribe installs l and returns a function that removes it. Calling the
// returned function more than once is harmless.
func (h *Hub) Subscribe(l Listener) (unsubscribe func()) {
	h.nextID++
	id := h.nextID
	h.listeners = append(h.listeners, entry{id: id, fn: l})
	return func() {
		for i, e := range h.listeners {
			if e.id == id {
				h.listeners = append(h.listeners[:i], h.listeners[i+1:]...)
				return
			}
		}
	}
}

// Len reports the number of installed listeners.
func (h *Hub) Len() int { return len(h.listeners) }

// Dispatch runs every listener, in subscription order, against msg.
// focusLocked tells listeners that a text entry currently owns the keyboard.
func (h *Hub) Dispatch(msg tea.KeyMsg, focusLocked bool) *Event {
	ev := &Event{Key: Normalize(msg.String()), Msg: msg, FocusLocked: focusLocked}
	snapshot := append([]entry(nil), h.listeners...)
	for _, e := range snapshot {
		e.fn(ev)
	}
	return ev
}

// Normalize lower-cases a key name and folds the spellings users put in
// config files ("Control+K", "ctl+k", "meta+k") onto bubbletea's names.
func Normalize(k string) string {
	s := strings.ToLower(strings.TrimSpace(k))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "ctl+", "ctrl+")
	s = strings.ReplaceAll(s, "meta+", "alt+")
	s = strings.ReplaceAll(s, "option+", "alt+")
	s = strings.ReplaceAll(s, "escape", "esc")
	return s
}
