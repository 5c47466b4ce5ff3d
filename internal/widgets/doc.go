// Package widgets contains dumb render primitives.
//
// Allowed here:
// - stateless drawing helpers (card chrome, badge chips, grids, popup compositor)
//
// Not allowed here:
// - key handling, overlay state, data loading, or anything that knows about content variants
package widgets
