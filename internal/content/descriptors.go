package content

import (
	"fmt"
	"strings"
)

func builtinDescriptors() []Descriptor {
	return []Descriptor{
		caseOf(VariantPrompt, plainTitle[*Prompt], promptBadges, SkeletonShape{TitleWidth: 18, DescriptionLines: 2, Badges: 2}),
		caseOf(VariantAgent, plainTitle[*Agent], agentBadges, SkeletonShape{TitleWidth: 16, DescriptionLines: 2, Badges: 3}),
		caseOf(VariantPower, powerTitle, powerBadges, SkeletonShape{TitleWidth: 20, DescriptionLines: 2, Badges: 3}),
		caseOf(VariantHook, plainTitle[*Hook], hookBadges, SkeletonShape{TitleWidth: 14, DescriptionLines: 1, Badges: 1}),
		caseOf(VariantSteering, plainTitle[*SteeringDoc], steeringBadges, SkeletonShape{TitleWidth: 16, DescriptionLines: 3, Badges: 1}),
	}
}

// caseOf binds typed resolvers to a variant tag. The returned descriptor
// rejects items of any other concrete type with ErrVariantMismatch.
func caseOf[T Item](v Variant, title func(T) string, badges func(T) []Badge, shape SkeletonShape) Descriptor {
	return Descriptor{
		Variant: v,
		Label:   v.Label(),
		Title: func(item Item) (string, error) {
			typed, err := as[T](v, item)
			if err != nil {
				return "", err
			}
			return title(typed), nil
		},
		Badges: func(item Item) ([]Badge, error) {
			typed, err := as[T](v, item)
			if err != nil {
				return nil, err
			}
			return badges(typed), nil
		},
		Skeleton: shape,
	}
}

func as[T Item](v Variant, item Item) (T, error) {
	typed, ok := item.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: tag %q carried by %T", ErrVariantMismatch, v, item)
	}
	return typed, nil
}

func plainTitle[T Item](item T) string {
	return item.Info().Title
}

func powerTitle(p *Power) string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Title
}

func promptBadges(p *Prompt) []Badge {
	out := appendBadge(nil, BadgeCategory, p.Category)
	return appendBadges(out, BadgeTag, p.Tags)
}

func agentBadges(a *Agent) []Badge {
	out := appendBadge(nil, BadgeModel, a.Model)
	return appendBadges(out, BadgeTool, a.Tools)
}

func powerBadges(p *Power) []Badge {
	return appendBadges(nil, BadgeKeyword, p.Keywords)
}

func hookBadges(h *Hook) []Badge {
	return appendBadge(nil, BadgeTrigger, h.Trigger)
}

func steeringBadges(s *SteeringDoc) []Badge {
	out := appendBadge(nil, BadgeInclusion, s.Inclusion)
	if strings.EqualFold(s.Inclusion, "fileMatch") {
		out = appendBadge(out, BadgePattern, s.FileMatch)
	}
	return out
}

func appendBadge(out []Badge, kind BadgeKind, label string) []Badge {
	label = strings.TrimSpace(label)
	if label == "" {
		return out
	}
	return append(out, Badge{Label: label, Kind: kind})
}

func appendBadges(out []Badge, kind BadgeKind, labels []string) []Badge {
	for _, l := range labels {
		out = appendBadge(out, kind, l)
	}
	return out
}
