package overlay

import (
	"context"
	"errors"
)

// ErrNoController is returned when a view asks for the overlay outside a
// context that carries one. It signals a wiring bug.
var ErrNoController = errors.New("overlay: no controller in context")

type ctxKey struct{}

// WithController returns a context carrying c.
func WithController(ctx context.Context, c *Controller) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the controller stored by WithController.
func FromContext(ctx context.Context) (*Controller, error) {
	if ctx == nil {
		return nil, ErrNoController
	}
	c, ok := ctx.Value(ctxKey{}).(*Controller)
	if !ok || c == nil {
		return nil, ErrNoController
	}
	return c, nil
}
