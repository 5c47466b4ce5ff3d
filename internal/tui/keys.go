package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/catalog/internal/keyboard"
)

const (
	scopeGrid   = "grid"
	scopeDetail = "detail"
	scopeSearch = "search"
)

const (
	actionQuit       = "quit"
	actionNextTab    = "next-tab"
	actionPrevTab    = "prev-tab"
	actionSwitchTab  = "switch-tab"
	actionLeft       = "left"
	actionRight      = "right"
	actionUp         = "up"
	actionDown       = "down"
	actionPageUp     = "page-up"
	actionPageDown   = "page-down"
	actionOpenDetail = "open-detail"
	actionClose      = "close"
	actionSearch     = "search"
	actionReload     = "reload"
)

type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

// DefaultKeyBindings returns the catalog bindings. searchShortcut is the
// overlay's global shortcut; it is listed for help only since the keyboard
// hub consumes it before the registry sees it.
func DefaultKeyBindings(searchShortcut string) []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"ctrl+c"}, Action: actionQuit, Description: "quit", Scopes: []string{scopeSearch}},
		{Keys: []string{"q", "ctrl+c"}, Action: actionQuit, Description: "quit", Scopes: []string{scopeGrid}},
		{Keys: []string{"tab", "]"}, Action: actionNextTab, Description: "next tab", Scopes: []string{scopeGrid}},
		{Keys: []string{"shift+tab", "["}, Action: actionPrevTab, Description: "prev tab", Scopes: []string{scopeGrid}},
		{Keys: []string{"1", "2", "3", "4", "5", "6"}, Action: actionSwitchTab, Description: "tabs", Scopes: []string{scopeGrid}},
		{Keys: []string{"left", "h"}, Action: actionLeft, Description: "left", Scopes: []string{scopeGrid}},
		{Keys: []string{"right", "l"}, Action: actionRight, Description: "right", Scopes: []string{scopeGrid}},
		{Keys: []string{"up", "k"}, Action: actionUp, Description: "up", Scopes: []string{scopeGrid}},
		{Keys: []string{"down", "j"}, Action: actionDown, Description: "down", Scopes: []string{scopeGrid}},
		{Keys: []string{"pgup"}, Action: actionPageUp, Description: "page up", Scopes: []string{scopeGrid}},
		{Keys: []string{"pgdown"}, Action: actionPageDown, Description: "page down", Scopes: []string{scopeGrid}},
		{Keys: []string{"enter"}, Action: actionOpenDetail, Description: "details", Scopes: []string{scopeGrid}},
		{Keys: []string{searchShortcut, "/"}, Action: actionSearch, Description: "search", Scopes: []string{scopeGrid}},
		{Keys: []string{"r"}, Action: actionReload, Description: "reload", Scopes: []string{scopeGrid}},
		{Keys: []string{"esc", "q", "enter"}, Action: actionClose, Description: "close", Scopes: []string{scopeDetail}},
		{Keys: []string{"esc"}, Action: actionClose, Description: "close", Scopes: []string{scopeSearch}},
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

func (r *KeyRegistry) IsAction(msg tea.KeyMsg, action, scope string) bool {
	pressed := keyboard.Normalize(msg.String())
	for _, b := range r.bindings {
		if b.Action != action || !scopeMatch(scope, b.Scopes) {
			continue
		}
		for _, k := range b.Keys {
			if keyboard.Normalize(k) == pressed {
				return true
			}
		}
	}
	return false
}

// HelpBindings converts the bindings of scope into bubbles key bindings for
// the footer, one entry per action.
func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	seen := make(map[string]bool)
	var out []key.Binding
	for _, b := range r.BindingsForScope(scope) {
		if len(b.Keys) == 0 || seen[b.Action] {
			continue
		}
		seen[b.Action] = true
		helpKey := b.Keys[0]
		if b.Action == actionSwitchTab {
			helpKey = b.Keys[0] + "-" + b.Keys[len(b.Keys)-1]
		}
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(helpKey, b.Description)))
	}
	return out
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == "*" || s == scope {
			return true
		}
	}
	return false
}
