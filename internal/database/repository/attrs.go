package repository

import (
	"fmt"

	"github.com/jask/catalog/internal/content"
)

// attr is one item_attrs row. Scalars use position 0.
type attr struct {
	name     string
	position int
	value    string
}

const (
	attrCategory    = "category"
	attrTags        = "tags"
	attrModel       = "model"
	attrTools       = "tools"
	attrDisplayName = "display_name"
	attrKeywords    = "keywords"
	attrTrigger     = "trigger"
	attrPatterns    = "patterns"
	attrAction      = "action"
	attrInclusion   = "inclusion"
	attrFileMatch   = "file_match"
)

func attrsOf(item content.Item) []attr {
	var out []attr
	switch it := item.(type) {
	case *content.Prompt:
		out = scalar(out, attrCategory, it.Category)
		out = list(out, attrTags, it.Tags)
	case *content.Agent:
		out = scalar(out, attrModel, it.Model)
		out = list(out, attrTools, it.Tools)
	case *content.Power:
		out = scalar(out, attrDisplayName, it.DisplayName)
		out = list(out, attrKeywords, it.Keywords)
	case *content.Hook:
		out = scalar(out, attrTrigger, it.Trigger)
		out = list(out, attrPatterns, it.Patterns)
		out = scalar(out, attrAction, it.Action)
	case *content.SteeringDoc:
		out = scalar(out, attrInclusion, it.Inclusion)
		out = scalar(out, attrFileMatch, it.FileMatch)
	}
	return out
}

func scalar(out []attr, name, value string) []attr {
	if value == "" {
		return out
	}
	return append(out, attr{name: name, value: value})
}

func list(out []attr, name string, values []string) []attr {
	for i, v := range values {
		out = append(out, attr{name: name, position: i, value: v})
	}
	return out
}

// build reassembles the concrete item for a stored variant tag.
func build(v content.Variant, meta content.Meta, attrs map[string][]string) (content.Item, error) {
	first := func(name string) string {
		if vals := attrs[name]; len(vals) > 0 {
			return vals[0]
		}
		return ""
	}
	switch v {
	case content.VariantPrompt:
		return &content.Prompt{Meta: meta, Category: first(attrCategory), Tags: attrs[attrTags]}, nil
	case content.VariantAgent:
		return &content.Agent{Meta: meta, Model: first(attrModel), Tools: attrs[attrTools]}, nil
	case content.VariantPower:
		return &content.Power{Meta: meta, DisplayName: first(attrDisplayName), Keywords: attrs[attrKeywords]}, nil
	case content.VariantHook:
		return &content.Hook{Meta: meta, Trigger: first(attrTrigger), Patterns: attrs[attrPatterns], Action: first(attrAction)}, nil
	case content.VariantSteering:
		return &content.SteeringDoc{Meta: meta, Inclusion: first(attrInclusion), FileMatch: first(attrFileMatch)}, nil
	}
	return nil, fmt.Errorf("stored item %s: %w", meta.ID, &content.UnregisteredVariantError{Tag: string(v)})
}
