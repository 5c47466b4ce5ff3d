// Package content defines the catalog's content variants and the registry that
// turns each variant into display data (titles, badges, skeleton shapes).
package content

import "time"

// Item is one content entry. The set of implementations is closed: Prompt,
// Agent, Power, Hook and SteeringDoc.
type Item interface {
	Variant() Variant
	Info() Meta
	isItem()
}

// Meta holds the fields every variant shares.
type Meta struct {
	ID          string
	Type        Variant
	Title       string
	Description string
	Body        string
	Path        string
	Git         *GitInfo
	UpdatedAt   time.Time
}

// GitInfo is the optional commit metadata attached to an item's source file.
type GitInfo struct {
	Author           string
	AuthorEmail      string
	CreatedDate      time.Time
	LastModifiedDate time.Time
	CommitHash       string
	CommitMessage    string
}

// HasHash reports whether a commit hash is available. The hash itself is
// opaque.
func (g *GitInfo) HasHash() bool {
	return g != nil && g.CommitHash != ""
}

// LastModified returns the most recent known modification time of the item.
func (m Meta) LastModified() time.Time {
	if m.Git != nil && !m.Git.LastModifiedDate.IsZero() {
		return m.Git.LastModifiedDate
	}
	return m.UpdatedAt
}

type Prompt struct {
	Meta
	Category string
	Tags     []string
}

type Agent struct {
	Meta
	Model string
	Tools []string
}

// Power is an integration bundle. DisplayName, when set, is shown instead of
// Title.
type Power struct {
	Meta
	DisplayName string
	Keywords    []string
}

// Hook runs an action when Trigger fires (for example "fileEdited").
type Hook struct {
	Meta
	Trigger  string
	Patterns []string
	Action   string
}

// SteeringDoc is guidance included into agent context according to Inclusion
// ("always", "fileMatch" or "manual").
type SteeringDoc struct {
	Meta
	Inclusion string
	FileMatch string
}

func (p *Prompt) Variant() Variant      { return p.variant(VariantPrompt) }
func (a *Agent) Variant() Variant       { return a.variant(VariantAgent) }
func (p *Power) Variant() Variant       { return p.variant(VariantPower) }
func (h *Hook) Variant() Variant        { return h.variant(VariantHook) }
func (s *SteeringDoc) Variant() Variant { return s.variant(VariantSteering) }

func (p *Prompt) Info() Meta      { return p.withType(VariantPrompt) }
func (a *Agent) Info() Meta       { return a.withType(VariantAgent) }
func (p *Power) Info() Meta       { return p.withType(VariantPower) }
func (h *Hook) Info() Meta        { return h.withType(VariantHook) }
func (s *SteeringDoc) Info() Meta { return s.withType(VariantSteering) }

func (*Prompt) isItem()      {}
func (*Agent) isItem()       {}
func (*Power) isItem()       {}
func (*Hook) isItem()        {}
func (*SteeringDoc) isItem() {}

// variant returns the stored tag, falling back to the concrete type's own tag.
func (m Meta) variant(fallback Variant) Variant {
	if m.Type == "" {
		return fallback
	}
	return m.Type
}

func (m Meta) withType(v Variant) Meta {
	if m.Type == "" {
		m.Type = v
	}
	return m
}
