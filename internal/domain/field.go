package domain

import "time"

// FieldKind enumerates supported customization input types.
type FieldKind string

const (
	FieldKindText   FieldKind = "text"
	FieldKindUpload FieldKind = "upload"
	FieldKindShape  FieldKind = "shape"
)

// Field defines one customization input of a product: an engraving phrase,
// an image upload slot, or the shape pick itself.
type Field struct {
	ID        string
	ProductID string
	Key       string
	Kind      FieldKind
	Label     string
	// MaxWords caps text fields; zero means no limit.
	MaxWords int
	// MaxBytes caps upload fields; zero means no limit.
	MaxBytes int64
	// Required marks the field mandatory for every shape.
	Required bool
	// RequiredShapes lists shapes for which the field is mandatory even
	// when Required is false. Empty means requiredness does not depend on
	// the selected shape.
	RequiredShapes []string
}

// RequiredFor reports whether the field is mandatory under the given shape.
// An empty shape means no variant has been selected yet; shape-dependent
// fields count as not yet required in that case.
func (f Field) RequiredFor(shape string) bool {
	if f.Required {
		return true
	}
	for _, s := range f.RequiredShapes {
		if s == shape {
			return true
		}
	}
	return false
}

// FieldState is the persisted completion record of one field within a
// session. Complete mirrors the flag a field widget reports into the
// validation checklist.
type FieldState struct {
	SessionID string
	FieldKey  string
	Complete  bool
	Value     []byte
	UpdatedAt time.Time
}
