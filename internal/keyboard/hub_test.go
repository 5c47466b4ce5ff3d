package keyboard

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestHubDispatchOrderAndPreventDefault(t *testing.T) {
	h := NewHub()
	var order []string
	h.Subscribe(func(e *Event) { order = append(order, "a:"+e.Key) })
	h.Subscribe(func(e *Event) {
		order = append(order, "b:"+e.Key)
		if e.Key == "ctrl+k" {
			e.PreventDefault()
		}
	})

	ev := h.Dispatch(tea.KeyMsg{Type: tea.KeyCtrlK}, false)
	if !ev.DefaultPrevented() {
		t.Fatal("expected ctrl+k default to be prevented")
	}
	if len(order) != 2 || order[0] != "a:ctrl+k" || order[1] != "b:ctrl+k" {
		t.Fatalf("order = %v", order)
	}

	ev = h.Dispatch(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, false)
	if ev.DefaultPrevented() {
		t.Fatal("x should not be prevented")
	}
}

func TestHubUnsubscribeIsIdempotent(t *testing.T) {
	h := NewHub()
	calls := 0
	unsubA := h.Subscribe(func(*Event) { calls++ })
	h.Subscribe(func(*Event) {})
	if h.Len() != 2 {
		t.Fatalf("Len = %d, want 2", h.Len())
	}
	unsubA()
	unsubA()
	if h.Len() != 1 {
		t.Fatalf("Len after unsubscribe = %d, want 1", h.Len())
	}
	h.Dispatch(tea.KeyMsg{Type: tea.KeyEsc}, false)
	if calls != 0 {
		t.Fatalf("removed listener called %d times", calls)
	}
}

func TestHubListenerMayUnsubscribeDuringDispatch(t *testing.T) {
	h := NewHub()
	var unsub func()
	seen := 0
	unsub = h.Subscribe(func(*Event) { unsub() })
	h.Subscribe(func(*Event) { seen++ })
	h.Dispatch(tea.KeyMsg{Type: tea.KeyEsc}, false)
	if seen != 1 {
		t.Fatalf("second listener calls = %d, want 1", seen)
	}
	if h.Len() != 1 {
		t.Fatalf("Len = %d, want 1", h.Len())
	}
}

func TestDispatchCarriesFocusLock(t *testing.T) {
	h := NewHub()
	ev := h.Dispatch(tea.KeyMsg{Type: tea.KeyCtrlK}, true)
	if !ev.FocusLocked {
		t.Fatal("expected focus lock flag on event")
	}
}

func TestNormalize(t *testing.T) {
	for in, want := range map[string]string{
		"Control+K": "ctrl+k",
		"ctl+k":     "ctrl+k",
		"Meta+K":    "alt+k",
		"option+k":  "alt+k",
		" Escape ":  "esc",
		"alt+k":     "alt+k",
	} {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}
