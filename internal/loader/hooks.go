package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jask/catalog/internal/content"
)

// hookFile is the on-disk hook definition:
//
//	{"name": "...", "when": {"type": "fileEdited", "patterns": [...]},
//	 "then": {"type": "askAgent", "prompt": "..."}}
type hookFile struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	When        struct {
		Type     string   `json:"type" yaml:"type"`
		Patterns []string `json:"patterns" yaml:"patterns"`
	} `json:"when" yaml:"when"`
	Then struct {
		Type    string `json:"type" yaml:"type"`
		Prompt  string `json:"prompt" yaml:"prompt"`
		Command string `json:"command" yaml:"command"`
	} `json:"then" yaml:"then"`
}

func parseHook(src source, data []byte) (content.Item, error) {
	var hf hookFile
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &hf); err != nil {
			return nil, fmt.Errorf("decode hook: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &hf); err != nil {
		return nil, fmt.Errorf("decode hook: %w", err)
	}

	action := strings.TrimSpace(hf.Then.Prompt)
	if action == "" {
		action = strings.TrimSpace(hf.Then.Command)
	}
	title := firstNonEmpty(hf.Title, hf.Name, titleFromName(src.name))
	id := hf.ID
	if id == "" {
		id = deriveID(content.VariantHook, src.rel)
	}
	return &content.Hook{
		Meta: content.Meta{
			ID:          id,
			Type:        content.VariantHook,
			Title:       title,
			Description: strings.TrimSpace(hf.Description),
			Body:        action,
			Path:        src.rel,
			UpdatedAt:   src.modTime,
		},
		Trigger:  strings.TrimSpace(hf.When.Type),
		Patterns: hf.When.Patterns,
		Action:   action,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
