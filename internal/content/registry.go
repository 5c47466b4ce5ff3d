package content

import (
	"errors"
	"fmt"
)

// BadgeKind classifies a badge so the view can colour it.
type BadgeKind string

const (
	BadgeCategory  BadgeKind = "category"
	BadgeTag       BadgeKind = "tag"
	BadgeModel     BadgeKind = "model"
	BadgeTool      BadgeKind = "tool"
	BadgeKeyword   BadgeKind = "keyword"
	BadgeTrigger   BadgeKind = "trigger"
	BadgeInclusion BadgeKind = "inclusion"
	BadgePattern   BadgeKind = "pattern"
)

// Badge is a small labelled tag shown on a card or detail header.
type Badge struct {
	Label string
	Kind  BadgeKind
}

// SkeletonShape describes the loading placeholder drawn for a variant.
type SkeletonShape struct {
	TitleWidth       int
	DescriptionLines int
	Badges           int
}

// Descriptor is the registered rendering case for one variant. Title and
// Badges receive only items whose concrete type belongs to Variant.
type Descriptor struct {
	Variant  Variant
	Label    string
	Title    func(Item) (string, error)
	Badges   func(Item) ([]Badge, error)
	Skeleton SkeletonShape
}

// Registry maps variant tags to descriptors.
type Registry struct {
	byVariant map[Variant]Descriptor
}

func NewRegistry() *Registry {
	return &Registry{byVariant: make(map[Variant]Descriptor)}
}

// NewDefaultRegistry registers the five built-in variants and validates the
// result, so a variant added to Variants() without a descriptor fails here.
func NewDefaultRegistry() (*Registry, error) {
	r := NewRegistry()
	for _, d := range builtinDescriptors() {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds a descriptor. Registering the same tag twice is an error.
func (r *Registry) Register(d Descriptor) error {
	if d.Variant == "" {
		return errors.New("register descriptor: variant is required")
	}
	if d.Title == nil || d.Badges == nil {
		return fmt.Errorf("register descriptor %q: title and badge resolvers are required", d.Variant)
	}
	if _, exists := r.byVariant[d.Variant]; exists {
		return fmt.Errorf("register descriptor %q: already registered", d.Variant)
	}
	if d.Label == "" {
		d.Label = d.Variant.Label()
	}
	r.byVariant[d.Variant] = d
	return nil
}

// Validate reports every built-in variant that has no descriptor.
func (r *Registry) Validate() error {
	var missing []error
	for _, v := range Variants() {
		if _, ok := r.byVariant[v]; !ok {
			missing = append(missing, &UnregisteredVariantError{Tag: string(v)})
		}
	}
	return errors.Join(missing...)
}

// Describe returns the descriptor registered for v.
func (r *Registry) Describe(v Variant) (Descriptor, error) {
	d, ok := r.byVariant[v]
	if !ok {
		known := make([]Variant, 0, len(r.byVariant))
		for k := range r.byVariant {
			known = append(known, k)
		}
		return Descriptor{}, &UnregisteredVariantError{Tag: string(v), Suggestion: suggestVariant(string(v), known)}
	}
	return d, nil
}

// ResolveTitle returns the display title of item.
func (r *Registry) ResolveTitle(item Item) (string, error) {
	d, err := r.Describe(item.Variant())
	if err != nil {
		return "", err
	}
	return d.Title(item)
}

// ResolveBadges returns the item's badges in display order. An item with
// nothing badge-worthy yields an empty slice.
func (r *Registry) ResolveBadges(item Item) ([]Badge, error) {
	d, err := r.Describe(item.Variant())
	if err != nil {
		return nil, err
	}
	badges, err := d.Badges(item)
	if err != nil {
		return nil, err
	}
	if badges == nil {
		badges = []Badge{}
	}
	return badges, nil
}

// SkeletonFor returns the loading shape registered for v.
func (r *Registry) SkeletonFor(v Variant) (SkeletonShape, error) {
	d, err := r.Describe(v)
	if err != nil {
		return SkeletonShape{}, err
	}
	return d.Skeleton, nil
}
