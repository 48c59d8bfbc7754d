package domain

import "time"

// Product is a catalog entry that shoppers can customize.
type Product struct {
	ID        string
	Slug      string
	Title     string
	Fields    []Field
	Variants  []Variant
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Variant represents one shape option of a product. StorefrontVariantID is
// the identifier the storefront form submits for this option.
type Variant struct {
	ID                  string
	ProductID           string
	Shape               string
	StorefrontVariantID string
	Position            int
}

// VariantByID returns the variant with the given ID, if present.
func (p Product) VariantByID(id string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// FieldByKey returns the field definition with the given key, if present.
func (p Product) FieldByKey(key string) (Field, bool) {
	for _, f := range p.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}
