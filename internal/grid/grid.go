// Package grid turns ordered item collections into card descriptors, empty
// states and loading skeletons. It never looks at variant fields itself; all
// per-item shaping goes through the content registry.
package grid

import (
	"time"

	"github.com/jask/catalog/internal/badge"
	"github.com/jask/catalog/internal/content"
	"github.com/jask/catalog/internal/format"
)

// DefaultSkeletonCount is the number of placeholders drawn while loading.
const DefaultSkeletonCount = 6

const (
	defaultHeadline = "No content yet"
	defaultSubline  = "Check back soon for new additions."
)

// Result is either EmptyState or ItemList.
type Result interface {
	isResult()
}

// EmptyState is produced only when the source collection has no items.
type EmptyState struct {
	Headline string
	Subline  string
}

// ItemList holds the selected cards in source order. It may be empty when the
// caller asked for zero items.
type ItemList struct {
	Cards []Card
}

func (EmptyState) isResult() {}
func (ItemList) isResult()   {}

// Card is the variant-agnostic description of one grid cell.
type Card struct {
	ID          string
	Variant     content.Variant
	Title       string
	Description string
	Badges      []content.Badge
	Hash        string
	Updated     time.Time
}

// Placeholder is one loading-state card.
type Placeholder struct {
	Shape content.SkeletonShape
}

// Renderer renders one grid.
type Renderer struct {
	registry *content.Registry
	empty    EmptyState
	context  badge.Context
}

type Option func(*Renderer)

// WithEmptyState sets the copy shown when the collection is empty.
func WithEmptyState(headline, subline string) Option {
	return func(r *Renderer) {
		r.empty = EmptyState{Headline: headline, Subline: subline}
	}
}

// WithBadgeContext changes the badge arrangement applied to cards.
func WithBadgeContext(ctx badge.Context) Option {
	return func(r *Renderer) { r.context = ctx }
}

func New(registry *content.Registry, opts ...Option) *Renderer {
	r := &Renderer{
		registry: registry,
		empty:    EmptyState{Headline: defaultHeadline, Subline: defaultSubline},
		context:  badge.CardHeader,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render renders every item.
func (r *Renderer) Render(items []content.Item) (Result, error) {
	return r.RenderLimit(items, len(items))
}

// RenderLimit renders at most maxItems items, keeping their order. Negative
// limits are treated as zero.
func (r *Renderer) RenderLimit(items []content.Item, maxItems int) (Result, error) {
	if len(items) == 0 {
		return r.empty, nil
	}
	n := min(len(items), max(maxItems, 0))
	cards := make([]Card, 0, n)
	for _, item := range items[:n] {
		c, err := r.Card(item)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return ItemList{Cards: cards}, nil
}

// Card builds the descriptor of a single item.
func (r *Renderer) Card(item content.Item) (Card, error) {
	title, err := r.registry.ResolveTitle(item)
	if err != nil {
		return Card{}, err
	}
	all, err := r.registry.ResolveBadges(item)
	if err != nil {
		return Card{}, err
	}
	shown, err := badge.Arrange(r.context, all)
	if err != nil {
		return Card{}, err
	}
	meta := item.Info()
	c := Card{
		ID:          meta.ID,
		Variant:     item.Variant(),
		Title:       title,
		Description: meta.Description,
		Badges:      shown,
		Updated:     meta.LastModified(),
	}
	if meta.Git.HasHash() {
		c.Hash = format.ShortHash(meta.Git.CommitHash)
	}
	return c, nil
}

// RenderSkeleton returns count generic placeholders. Negative counts yield
// none.
func RenderSkeleton(count int) []Placeholder {
	count = max(count, 0)
	out := make([]Placeholder, count)
	for i := range out {
		out[i] = Placeholder{Shape: content.SkeletonShape{TitleWidth: 16, DescriptionLines: 2, Badges: 2}}
	}
	return out
}

// DefaultSkeleton returns DefaultSkeletonCount generic placeholders.
func DefaultSkeleton() []Placeholder {
	return RenderSkeleton(DefaultSkeletonCount)
}

// RenderVariantSkeleton returns count placeholders shaped like v's cards.
func (r *Renderer) RenderVariantSkeleton(v content.Variant, count int) ([]Placeholder, error) {
	shape, err := r.registry.SkeletonFor(v)
	if err != nil {
		return nil, err
	}
	out := RenderSkeleton(count)
	for i := range out {
		out[i].Shape = shape
	}
	return out, nil
}
