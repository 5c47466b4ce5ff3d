package overlay

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/catalog/internal/keyboard"
)

type recordingLock struct {
	ScrollLock
	locks   int
	unlocks int
}

func (l *recordingLock) Lock()   { l.locks++; l.ScrollLock.Lock() }
func (l *recordingLock) Unlock() { l.unlocks++; l.ScrollLock.Unlock() }

func newTestController(t *testing.T) (*Controller, *recordingLock, *keyboard.Hub) {
	t.Helper()
	lock := &recordingLock{}
	hub := keyboard.NewHub()
	c := New(WithScrollLock(lock), WithModifier("ctrl"))
	c.Mount(hub)
	t.Cleanup(c.Teardown)
	return c, lock, hub
}

func ctrlK() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyCtrlK} }
func esc() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyEsc} }

func TestControllerStartsClosed(t *testing.T) {
	c, lock, _ := newTestController(t)
	if c.IsOpen() || c.State() != Closed {
		t.Fatalf("initial state = %s, want closed", c.State())
	}
	if lock.Locked() {
		t.Fatal("scroll lock held before open")
	}
}

func TestOpenCloseTogglesScrollLock(t *testing.T) {
	c, lock, _ := newTestController(t)
	c.Open()
	if !c.IsOpen() || !lock.Locked() {
		t.Fatalf("after Open: open=%v locked=%v", c.IsOpen(), lock.Locked())
	}
	c.Close()
	if c.IsOpen() || lock.Locked() {
		t.Fatalf("after Close: open=%v locked=%v", c.IsOpen(), lock.Locked())
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	c, lock, _ := newTestController(t)
	changes := 0
	c.OnChange(func(State) { changes++ })
	c.Open()
	c.Open()
	if !c.IsOpen() {
		t.Fatal("expected open")
	}
	if lock.locks != 1 {
		t.Fatalf("lock acquired %d times, want 1", lock.locks)
	}
	if changes != 1 {
		t.Fatalf("transitions = %d, want 1", changes)
	}
}

func TestCloseWhileClosedIsNoop(t *testing.T) {
	c, lock, _ := newTestController(t)
	c.Close()
	if c.IsOpen() || lock.unlocks != 0 {
		t.Fatalf("close while closed: open=%v unlocks=%d", c.IsOpen(), lock.unlocks)
	}
}

func TestShortcutOpensAndPreventsDefault(t *testing.T) {
	c, lock, hub := newTestController(t)
	ev := hub.Dispatch(ctrlK(), false)
	if !c.IsOpen() {
		t.Fatal("ctrl+k should open the overlay")
	}
	if !ev.DefaultPrevented() {
		t.Fatal("ctrl+k default handling should be prevented")
	}

	ev = hub.Dispatch(ctrlK(), false)
	if !ev.DefaultPrevented() || lock.locks != 1 {
		t.Fatalf("repeat ctrl+k: prevented=%v locks=%d", ev.DefaultPrevented(), lock.locks)
	}
}

func TestShortcutIgnoredWhileFocusLocked(t *testing.T) {
	c, _, hub := newTestController(t)
	ev := hub.Dispatch(ctrlK(), true)
	if c.IsOpen() || ev.DefaultPrevented() {
		t.Fatalf("focus-locked ctrl+k: open=%v prevented=%v", c.IsOpen(), ev.DefaultPrevented())
	}
}

func TestEscapeClosesOnlyWhenOpen(t *testing.T) {
	c, lock, hub := newTestController(t)
	ev := hub.Dispatch(esc(), false)
	if c.IsOpen() || ev.DefaultPrevented() || lock.unlocks != 0 {
		t.Fatalf("esc while closed changed something: open=%v prevented=%v unlocks=%d", c.IsOpen(), ev.DefaultPrevented(), lock.unlocks)
	}

	c.Open()
	ev = hub.Dispatch(esc(), false)
	if c.IsOpen() || !ev.DefaultPrevented() || lock.Locked() {
		t.Fatalf("esc while open: open=%v prevented=%v locked=%v", c.IsOpen(), ev.DefaultPrevented(), lock.Locked())
	}
}

func TestOtherKeysPassThrough(t *testing.T) {
	_, _, hub := newTestController(t)
	ev := hub.Dispatch(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}, false)
	if ev.DefaultPrevented() {
		t.Fatal("plain k must not be consumed")
	}
}

func TestMountTwiceInstallsOneListener(t *testing.T) {
	hub := keyboard.NewHub()
	lock := &recordingLock{}
	c := New(WithScrollLock(lock), WithModifier("ctrl"))
	c.Mount(hub)
	c.Mount(hub)
	if hub.Len() != 1 {
		t.Fatalf("listeners = %d, want 1", hub.Len())
	}
	changes := 0
	c.OnChange(func(State) { changes++ })
	hub.Dispatch(ctrlK(), false)
	if changes != 1 || lock.locks != 1 {
		t.Fatalf("single press observed %d times, locks=%d", changes, lock.locks)
	}
	c.Teardown()
}

func TestTeardownWhileOpen(t *testing.T) {
	hub := keyboard.NewHub()
	lock := &recordingLock{}
	c := New(WithScrollLock(lock), WithModifier("ctrl"))
	c.Mount(hub)
	c.Open()

	c.Teardown()
	if lock.Locked() || lock.unlocks != 1 {
		t.Fatalf("teardown left lock: locked=%v unlocks=%d", lock.Locked(), lock.unlocks)
	}
	if hub.Len() != 0 || c.Mounted() {
		t.Fatalf("listener still installed: len=%d", hub.Len())
	}
	ev := hub.Dispatch(ctrlK(), false)
	if c.IsOpen() || ev.DefaultPrevented() {
		t.Fatal("shortcut after teardown should have no effect")
	}
	c.Teardown()
	if lock.unlocks != 1 {
		t.Fatalf("second teardown unlocked again: %d", lock.unlocks)
	}
}

func TestDefaultControllerUsesProcessScrollLock(t *testing.T) {
	c := New(WithModifier("ctrl"))
	defer c.Teardown()
	c.Open()
	if !ScrollLocked() {
		t.Fatal("process scroll lock should be held while open")
	}
	c.Close()
	if ScrollLocked() {
		t.Fatal("process scroll lock should be released after close")
	}
}

func TestShortcutPerPlatform(t *testing.T) {
	tests := []struct {
		mod, goos, want string
	}{
		{mod: "auto", goos: "darwin", want: "alt+k"},
		{mod: "auto", goos: "linux", want: "ctrl+k"},
		{mod: "", goos: "windows", want: "ctrl+k"},
		{mod: "meta", goos: "linux", want: "alt+k"},
		{mod: "Control", goos: "darwin", want: "ctrl+k"},
	}
	for _, tt := range tests {
		if got := Shortcut(tt.mod, tt.goos); got != tt.want {
			t.Fatalf("Shortcut(%q, %q) = %q, want %q", tt.mod, tt.goos, got, tt.want)
		}
	}
}

func TestAltShortcut(t *testing.T) {
	hub := keyboard.NewHub()
	c := New(WithScrollLock(&recordingLock{}), WithModifier("alt"))
	c.Mount(hub)
	defer c.Teardown()
	ev := hub.Dispatch(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}, Alt: true}, false)
	if !c.IsOpen() || !ev.DefaultPrevented() {
		t.Fatalf("alt+k: open=%v prevented=%v", c.IsOpen(), ev.DefaultPrevented())
	}
}

func TestFromContext(t *testing.T) {
	if _, err := FromContext(context.Background()); !errors.Is(err, ErrNoController) {
		t.Fatalf("err = %v, want ErrNoController", err)
	}
	c := New(WithScrollLock(&recordingLock{}))
	got, err := FromContext(WithController(context.Background(), c))
	if err != nil || got != c {
		t.Fatalf("FromContext = %p, %v; want %p", got, err, c)
	}
	if _, err := FromContext(WithController(context.Background(), nil)); !errors.Is(err, ErrNoController) {
		t.Fatalf("nil controller err = %v", err)
	}
}
