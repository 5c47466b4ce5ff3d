package loader

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jask/catalog/internal/content"
)

// source describes the file an item is read from.
type source struct {
	rel     string // slash separated, relative to the content root
	name    string
	modTime time.Time
}

var keyAliases = map[string]string{
	"filematchpattern": "filematch",
}

func parseMarkdown(src source, v content.Variant, data []byte, logger *logrus.Entry) (content.Item, error) {
	var fm map[string]interface{}
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		logger.WithError(err).WithField("path", src.rel).Warn("unreadable frontmatter, treating file as plain markdown")
		body = data
		fm = nil
	}
	fields := normalizeKeys(fm)

	if t := stringField(fields, "type"); t != "" {
		override, err := content.ParseVariant(t)
		if err != nil {
			return nil, err
		}
		v = override
	}

	meta := content.Meta{
		ID:          stringField(fields, "id"),
		Type:        v,
		Title:       stringField(fields, "title"),
		Description: stringField(fields, "description"),
		Body:        strings.TrimSpace(string(body)),
		Path:        src.rel,
		UpdatedAt:   src.modTime,
	}
	if meta.ID == "" {
		meta.ID = deriveID(v, src.rel)
	}
	if meta.Title == "" {
		meta.Title = titleFromName(src.name)
	}
	if meta.Description == "" {
		meta.Description = firstParagraph(body)
	}
	return newItem(v, meta, fields)
}

// newItem decodes the variant specific frontmatter fields into the concrete
// type for v.
func newItem(v content.Variant, meta content.Meta, fields map[string]interface{}) (content.Item, error) {
	var item content.Item
	switch v {
	case content.VariantPrompt:
		p := &content.Prompt{}
		if err := decode(fields, p); err != nil {
			return nil, err
		}
		p.Meta = meta
		item = p
	case content.VariantAgent:
		a := &content.Agent{}
		if err := decode(fields, a); err != nil {
			return nil, err
		}
		a.Meta = meta
		item = a
	case content.VariantPower:
		p := &content.Power{}
		if err := decode(fields, p); err != nil {
			return nil, err
		}
		p.Meta = meta
		item = p
	case content.VariantHook:
		h := &content.Hook{}
		if err := decode(fields, h); err != nil {
			return nil, err
		}
		h.Meta = meta
		item = h
	case content.VariantSteering:
		s := &content.SteeringDoc{}
		if err := decode(fields, s); err != nil {
			return nil, err
		}
		s.Meta = meta
		item = s
	default:
		return nil, &content.UnregisteredVariantError{Tag: string(v)}
	}
	return item, nil
}

func decode(fields map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(fields); err != nil {
		return fmt.Errorf("decode frontmatter: %w", err)
	}
	return nil
}

// normalizeKeys lower-cases keys and drops separators so display_name,
// display-name and displayName all reach the DisplayName field.
func normalizeKeys(fm map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fm))
	for k, val := range fm {
		key := strings.NewReplacer("_", "", "-", "").Replace(strings.ToLower(k))
		if alias, ok := keyAliases[key]; ok {
			key = alias
		}
		out[key] = val
	}
	return out
}

func stringField(fields map[string]interface{}, key string) string {
	s, ok := fields[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// deriveID is stable for a given variant and path.
func deriveID(v content.Variant, rel string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(string(v)+":"+rel)).String()
}

func titleFromName(name string) string {
	spaced := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(strings.TrimSpace(spaced))
}

// firstParagraph returns the plain text of the first top level paragraph.
func firstParagraph(body []byte) string {
	doc := goldmark.New().Parser().Parse(text.NewReader(body))
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if n.Kind() != ast.KindParagraph {
			continue
		}
		var b strings.Builder
		_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}
			switch t := c.(type) {
			case *ast.Text:
				b.Write(t.Segment.Value(body))
				if t.SoftLineBreak() || t.HardLineBreak() {
					b.WriteByte(' ')
				}
			case *ast.String:
				b.Write(t.Value)
			}
			return ast.WalkContinue, nil
		})
		return strings.TrimSpace(b.String())
	}
	return ""
}
