package tui

import (
	"context"

	"github.com/jask/catalog/internal/content"
)

// Source is the read side of the content store.
type Source interface {
	AllOfVariant(ctx context.Context, v content.Variant) ([]content.Item, error)
	Latest(ctx context.Context, limit int) ([]content.Item, error)
}
