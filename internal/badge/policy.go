// Package badge decides how many badges a display context shows and how they
// are laid out.
package badge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jask/catalog/internal/content"
)

// Context is a place badges are displayed.
type Context int

const (
	CardHeader Context = iota + 1
	DetailHeader
)

func (c Context) String() string {
	switch c {
	case CardHeader:
		return "card-header"
	case DetailHeader:
		return "detail-header"
	}
	return fmt.Sprintf("context(%d)", int(c))
}

// Layout is how the badge container flows.
type Layout string

const (
	LayoutInline Layout = "inline"
	LayoutWrap   Layout = "wrap"
)

// Arrangement is the fixed rule set for one context.
type Arrangement struct {
	Layout    Layout
	MaxBadges int
}

var ErrUnknownContext = errors.New("unknown badge context")

var arrangements = map[Context]Arrangement{
	CardHeader:   {Layout: LayoutInline, MaxBadges: 3},
	DetailHeader: {Layout: LayoutWrap, MaxBadges: 5},
}

// ArrangementFor returns the arrangement of ctx.
func ArrangementFor(ctx Context) (Arrangement, error) {
	a, ok := arrangements[ctx]
	if !ok {
		return Arrangement{}, fmt.Errorf("%w: %s", ErrUnknownContext, ctx)
	}
	return a, nil
}

// ParseContext accepts "card-header" or "detail-header".
func ParseContext(s string) (Context, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "card-header":
		return CardHeader, nil
	case "detail-header":
		return DetailHeader, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownContext, s)
}

// Arrange keeps the first MaxBadges badges of ctx in their original order.
// The remainder is dropped without an overflow marker; callers that want an
// "N more" hint compute it from the input length themselves.
func Arrange(ctx Context, badges []content.Badge) ([]content.Badge, error) {
	a, err := ArrangementFor(ctx)
	if err != nil {
		return nil, err
	}
	n := min(len(badges), a.MaxBadges)
	out := make([]content.Badge, n)
	copy(out, badges[:n])
	return out, nil
}
