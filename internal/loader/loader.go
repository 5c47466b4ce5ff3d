// Package loader reads a content directory into catalog items.
//
// Layout:
//
//	prompts/*.md
//	agents/*.md
//	powers/*.md or powers/<name>/POWER.md
//	hooks/*.kiro.hook, *.json, *.yaml
//	steering/*.md
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jask/catalog/internal/content"
)

// Dir maps each variant to its directory under the content root.
var Dir = map[content.Variant]string{
	content.VariantPrompt:   "prompts",
	content.VariantAgent:    "agents",
	content.VariantPower:    "powers",
	content.VariantHook:     "hooks",
	content.VariantSteering: "steering",
}

// Loader reads items from Root.
type Loader struct {
	root   string
	git    GitReader
	logger *logrus.Entry
}

type Option func(*Loader)

// WithGit sets the commit metadata source. Without it items carry no GitInfo.
func WithGit(g GitReader) Option {
	return func(l *Loader) { l.git = g }
}

func WithLogger(logger *logrus.Logger) Option {
	return func(l *Loader) { l.logger = logger.WithField("component", "loader") }
}

func New(root string, opts ...Option) *Loader {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	l := &Loader{root: root, logger: logrus.NewEntry(discard)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads every variant directory concurrently. Items come back grouped
// by directory in Variants() order, sorted by path within a directory.
func (l *Loader) Load(ctx context.Context) ([]content.Item, error) {
	variants := content.Variants()
	results := make([][]content.Item, len(variants))

	g, gCtx := errgroup.WithContext(ctx)
	for i, v := range variants {
		g.Go(func() error {
			items, err := l.LoadVariant(gCtx, v)
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []content.Item
	for _, items := range results {
		out = append(out, items...)
	}
	if err := checkUnique(out); err != nil {
		return nil, err
	}
	return out, nil
}

// ErrDuplicateID is returned when two files resolve to the same id within a
// variant.
var ErrDuplicateID = errors.New("duplicate content id")

type itemKey struct {
	variant content.Variant
	id      string
}

// checkUnique runs after type overrides are applied, so files in different
// directories can still collide.
func checkUnique(items []content.Item) error {
	seen := make(map[itemKey]string, len(items))
	for _, item := range items {
		meta := item.Info()
		k := itemKey{item.Variant(), meta.ID}
		if first, ok := seen[k]; ok {
			return fmt.Errorf("%w: %s %q in %s and %s", ErrDuplicateID, k.variant, k.id, first, meta.Path)
		}
		seen[k] = meta.Path
	}
	return nil
}

// LoadVariant reads one variant directory. A missing directory yields no
// items.
func (l *Loader) LoadVariant(ctx context.Context, v content.Variant) ([]content.Item, error) {
	name, ok := Dir[v]
	if !ok {
		return nil, &content.UnregisteredVariantError{Tag: string(v)}
	}
	dir := filepath.Join(l.root, name)
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		l.logger.WithField("variant", v).Debug("content directory missing")
		return nil, nil
	}

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !accepts(v, d.Name()) {
			return nil
		}
		// nested power bundles contribute only their POWER.md
		if v == content.VariantPower && filepath.Dir(path) != dir && !strings.EqualFold(d.Name(), "POWER.md") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(paths)

	items := make([]content.Item, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		item, err := l.loadFile(ctx, v, path)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	l.logger.WithFields(logrus.Fields{"variant": v, "count": len(items)}).Debug("loaded variant")
	return items, nil
}

func (l *Loader) loadFile(ctx context.Context, v content.Variant, path string) (content.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	rel, err := filepath.Rel(l.root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	src := source{rel: rel, name: baseName(v, path), modTime: info.ModTime().UTC()}
	var item content.Item
	if v == content.VariantHook {
		item, err = parseHook(src, data)
	} else {
		item, err = parseMarkdown(src, v, data, l.logger)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	if l.git != nil {
		gi, err := l.git.Info(ctx, path)
		if err != nil {
			l.logger.WithError(err).WithField("path", rel).Warn("git metadata unavailable")
		} else if gi != nil {
			setGit(item, gi)
		}
	}
	return item, nil
}

// accepts reports whether a file in v's directory is a content file.
func accepts(v content.Variant, name string) bool {
	lower := strings.ToLower(name)
	if v == content.VariantHook {
		for _, ext := range []string{".kiro.hook", ".json", ".yaml", ".yml"} {
			if strings.HasSuffix(lower, ext) {
				return true
			}
		}
		return false
	}
	return strings.HasSuffix(lower, ".md")
}

// baseName is the slug a file contributes to fallback titles and ids:
// powers/<name>/POWER.md uses the directory name.
func baseName(v content.Variant, path string) string {
	file := filepath.Base(path)
	if v == content.VariantPower && strings.EqualFold(file, "POWER.md") {
		return filepath.Base(filepath.Dir(path))
	}
	lower := strings.ToLower(file)
	for _, ext := range []string{".kiro.hook", ".json", ".yaml", ".yml", ".md"} {
		if strings.HasSuffix(lower, ext) {
			return file[:len(file)-len(ext)]
		}
	}
	return file
}

func setGit(item content.Item, gi *content.GitInfo) {
	switch it := item.(type) {
	case *content.Prompt:
		it.Git = gi
	case *content.Agent:
		it.Git = gi
	case *content.Power:
		it.Git = gi
	case *content.Hook:
		it.Git = gi
	case *content.SteeringDoc:
		it.Git = gi
	}
}
