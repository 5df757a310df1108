package draft

import (
	"padstock/internal/domain/entity"
	"padstock/pkg/slug"
)

// Mode distinguishes the two engine instances: a fresh product being created
// and an existing product being edited. The slug re-derivation policy and the
// minimum-one-variant rule both hang off it.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// ProductDraft is the exclusive, single-session edit state of one product.
// Nothing here is shared across sessions; all mutation happens in response to
// one admin action at a time.
type ProductDraft struct {
	mode Mode
	id   string

	name        string
	slug        string
	description string
	brand       string
	isFeatured  bool

	Specs    *SpecList
	Variants *VariantList

	// Global image set and stock carry the product only when it has no
	// variants (legacy simple-priced products, edit mode only).
	GlobalImages *ImageSet
	globalStock  *int
}

// NewCreate starts a create-mode draft. The create form always keeps at least
// one variant, so the draft is seeded with a single default variant.
func NewCreate() *ProductDraft {
	d := &ProductDraft{
		mode:         ModeCreate,
		Specs:        NewSpecList(),
		Variants:     NewVariantList(ModeCreate),
		GlobalImages: NewImageSet(),
	}
	d.Variants.Add()
	return d
}

// NewEdit hydrates a draft from a fetched record. This is the versioned
// decode boundary: legacy variants lacking an absolute price fall back to
// their delta field here, and only the absolute price survives into the
// draft, so every payload emitted afterwards carries the new field.
func NewEdit(rec *entity.Product) *ProductDraft {
	d := &ProductDraft{
		mode:         ModeEdit,
		id:           rec.ID,
		name:         rec.Name,
		slug:         rec.Slug,
		description:  rec.Description,
		brand:        rec.Brand,
		isFeatured:   rec.IsFeatured,
		Specs:        NewSpecList(),
		Variants:     NewVariantList(ModeEdit),
		GlobalImages: NewImageSetFromURLs(rec.Images),
	}
	if rec.Stock != nil {
		stock := *rec.Stock
		d.globalStock = &stock
	}
	for key, value := range rec.Specs {
		d.Specs.Add()
		i := d.Specs.Len() - 1
		d.Specs.SetKey(i, key)
		d.Specs.SetValue(i, value)
	}
	for i := range rec.Variants {
		rv := &rec.Variants[i]
		v := d.Variants.Add()
		v.ID = rv.ID
		v.Name = rv.Name
		v.SKU = rv.SKU
		v.Price = rv.UnitPrice()
		v.Stock = rv.Stock
		// Replay the record's own flag over Add's first-is-default seeding;
		// Normalize below repairs records persisted without any default.
		v.IsDefault = rv.IsDefault
		v.Images = NewImageSetFromURLs(rv.Images)
	}
	if d.Variants.Len() > 0 {
		d.Variants.Normalize()
	}
	return d
}

func (d *ProductDraft) Mode() Mode   { return d.mode }
func (d *ProductDraft) ID() string   { return d.id }
func (d *ProductDraft) Name() string { return d.name }
func (d *ProductDraft) Slug() string { return d.slug }

func (d *ProductDraft) Description() string { return d.description }
func (d *ProductDraft) Brand() string       { return d.brand }
func (d *ProductDraft) IsFeatured() bool    { return d.isFeatured }

// SetName applies the mode-dependent slug policy: in create mode the slug
// tracks every name change, in edit mode it is derived only while still
// empty, so a curated slug on an existing product is never overwritten.
func (d *ProductDraft) SetName(name string) {
	d.name = name
	if d.mode == ModeCreate || d.slug == "" {
		d.slug = slug.Make(name)
	}
}

// SetSlug lets the admin curate the slug directly.
func (d *ProductDraft) SetSlug(s string) {
	d.slug = slug.Make(s)
}

func (d *ProductDraft) SetDescription(description string) { d.description = description }
func (d *ProductDraft) SetBrand(brand string)             { d.brand = brand }
func (d *ProductDraft) SetFeatured(isFeatured bool)       { d.isFeatured = isFeatured }

func (d *ProductDraft) GlobalStock() (int, bool) {
	if d.globalStock == nil {
		return 0, false
	}
	return *d.globalStock, true
}

func (d *ProductDraft) SetGlobalStock(stock int) {
	d.globalStock = &stock
}

// SimplePriced reports which validation branch governs this draft: a product
// is either variant-priced or simple-priced, never both.
func (d *ProductDraft) SimplePriced() bool {
	return d.Variants.Len() == 0
}
