package draft

import (
	"padstock/pkg/errors"
)

// Variant is the edit-time form of a product variant. ID is empty for a
// variant created in this session and carries the server token otherwise.
// Price is the authoritative unit price, never a delta.
type Variant struct {
	ID        string
	Name      string
	SKU       string
	Price     float64
	Stock     int
	IsDefault bool
	Images    *ImageSet
}

// VariantList owns the ordered variant collection and its single-default
// invariant: whenever the list is non-empty, exactly one variant is default.
// The invariant may lapse transiently while the admin edits (unmarking the
// default without choosing a new one) and is repaired before submission.
type VariantList struct {
	mode Mode
	list *list[*Variant]
}

func NewVariantList(mode Mode) *VariantList {
	vl := &VariantList{mode: mode}
	vl.list = newList[*Variant](0, ensureSingleDefault)
	return vl
}

// ensureSingleDefault promotes the first variant when a non-empty list has no
// default, and demotes everything after the first default when several are
// marked. Removal of the current default therefore silently hands the role to
// the variant at index 0.
func ensureSingleDefault(items []*Variant) {
	if len(items) == 0 {
		return
	}
	seen := false
	for _, v := range items {
		if v.IsDefault {
			if seen {
				v.IsDefault = false
			}
			seen = true
		}
	}
	if !seen {
		items[0].IsDefault = true
	}
}

// Add appends a fresh variant with empty fields, price 0 and stock 0. The
// very first variant of the collection is default by construction.
func (vl *VariantList) Add() *Variant {
	v := &Variant{
		IsDefault: vl.list.len() == 0,
		Images:    NewImageSet(),
	}
	vl.list.appendAll(v)
	return v
}

// Remove deletes by position. In create mode the collection may never become
// empty; edit mode lifts that restriction so legacy simple-priced products
// can shed their variants entirely.
func (vl *VariantList) Remove(i int) error {
	if vl.mode == ModeCreate && vl.list.len() <= 1 {
		return errors.Validation("variants", "at least one variant is required")
	}
	return vl.list.removeAt(i)
}

// Update mutates one variant in place via fn.
func (vl *VariantList) Update(i int, fn func(v *Variant)) error {
	v, ok := vl.list.at(i)
	if !ok {
		return errors.BadRequest("variant index out of range", nil)
	}
	fn(v)
	return nil
}

// SetDefault marks variant i as the default and atomically clears the flag on
// every other variant; no reader ever observes two defaults. Passing false
// merely unmarks variant i, a transient defaultless state that Normalize
// corrects before submission.
func (vl *VariantList) SetDefault(i int, isDefault bool) error {
	target, ok := vl.list.at(i)
	if !ok {
		return errors.BadRequest("variant index out of range", nil)
	}
	if isDefault {
		for _, v := range vl.list.all() {
			v.IsDefault = v == target
		}
		return nil
	}
	target.IsDefault = false
	return nil
}

// Normalize repairs the single-default invariant. Called before submission.
func (vl *VariantList) Normalize() {
	vl.list.normalize()
}

func (vl *VariantList) Len() int {
	return vl.list.len()
}

func (vl *VariantList) At(i int) (*Variant, bool) {
	return vl.list.at(i)
}

func (vl *VariantList) All() []*Variant {
	return vl.list.all()
}

// Default returns the default variant, falling back to the first variant if
// none is marked, or nil for an empty collection.
func (vl *VariantList) Default() *Variant {
	for _, v := range vl.list.all() {
		if v.IsDefault {
			return v
		}
	}
	if vl.list.len() > 0 {
		v, _ := vl.list.at(0)
		return v
	}
	return nil
}

// BasePrice derives the product-level price from the default variant.
func (vl *VariantList) BasePrice() (float64, bool) {
	v := vl.Default()
	if v == nil {
		return 0, false
	}
	return v.Price, true
}
