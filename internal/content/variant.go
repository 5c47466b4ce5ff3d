package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Variant is the content-type tag of an item.
type Variant string

const (
	VariantPrompt   Variant = "prompt"
	VariantAgent    Variant = "agent"
	VariantPower    Variant = "power"
	VariantHook     Variant = "hook"
	VariantSteering Variant = "steering"
)

var (
	// ErrUnregisteredVariant is the configuration error returned when a tag has
	// no registered descriptor.
	ErrUnregisteredVariant = errors.New("unregistered content variant")
	// ErrVariantMismatch is returned when an item's tag and concrete type
	// disagree.
	ErrVariantMismatch = errors.New("content variant mismatch")
)

// UnregisteredVariantError names the offending tag and, when one is close
// enough, the registered tag the caller probably meant.
type UnregisteredVariantError struct {
	Tag        string
	Suggestion Variant
}

func (e *UnregisteredVariantError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s %q (did you mean %q?)", ErrUnregisteredVariant, e.Tag, e.Suggestion)
	}
	return fmt.Sprintf("%s %q", ErrUnregisteredVariant, e.Tag)
}

func (e *UnregisteredVariantError) Unwrap() error { return ErrUnregisteredVariant }

// Variants returns the built-in variants in display order.
func Variants() []Variant {
	return []Variant{VariantPrompt, VariantAgent, VariantPower, VariantHook, VariantSteering}
}

var variantAliases = map[string]Variant{
	"prompt":        VariantPrompt,
	"prompts":       VariantPrompt,
	"agent":         VariantAgent,
	"agents":        VariantAgent,
	"power":         VariantPower,
	"powers":        VariantPower,
	"hook":          VariantHook,
	"hooks":         VariantHook,
	"steering":      VariantSteering,
	"steering-doc":  VariantSteering,
	"steering-docs": VariantSteering,
}

// ParseVariant maps a user-supplied tag (singular or plural, any case) to a
// Variant.
func ParseVariant(s string) (Variant, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if v, ok := variantAliases[key]; ok {
		return v, nil
	}
	return "", &UnregisteredVariantError{Tag: s, Suggestion: suggestVariant(key, Variants())}
}

// Label returns the plural display label of a built-in variant.
func (v Variant) Label() string {
	switch v {
	case VariantPrompt:
		return "Prompts"
	case VariantAgent:
		return "Agents"
	case VariantPower:
		return "Powers"
	case VariantHook:
		return "Hooks"
	case VariantSteering:
		return "Steering"
	}
	return string(v)
}

// suggestVariant returns the candidate within edit distance 2 of tag, or "".
func suggestVariant(tag string, candidates []Variant) Variant {
	if tag == "" {
		return ""
	}
	best := Variant("")
	bestDist := 3
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(tag, string(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
