package rules

import (
	"customizer/internal/domain"
	"customizer/internal/gate"
)

// SeedChecklist registers every field of the product on the checklist for
// the given shape. A field that is not required under the shape is marked
// complete immediately; a required field takes whatever completion state
// has been recorded so far (false when none).
//
// Re-running SeedChecklist after a shape switch re-resolves requiredness
// for all fields, so a field that just became optional stops blocking the
// gate and one that just became required starts blocking it until filled.
func SeedChecklist(c *gate.Checklist, product domain.Product, shape string, states map[string]bool) {
	for _, field := range product.Fields {
		if field.Kind == domain.FieldKindShape {
			c.SetField(field.Key, shape != "")
			continue
		}
		if !field.RequiredFor(shape) {
			c.SetField(field.Key, true)
			continue
		}
		c.SetField(field.Key, states[field.Key])
	}
}

// EffectiveStates resolves the persisted field states of a session against
// the product definition and selected shape, returning the checklist map
// the gate evaluates. It is the pure counterpart of SeedChecklist for
// callers that only need the map.
func EffectiveStates(product domain.Product, shape string, states map[string]bool) map[string]bool {
	c := gate.New()
	SeedChecklist(c, product, shape, states)
	return c.Snapshot()
}
