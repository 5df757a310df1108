package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padstock/internal/domain/entity"
)

func floatPtr(f float64) *float64 { return &f }

func TestCreateModeSlugTracksName(t *testing.T) {
	d := NewCreate()

	d.SetName("Manette DualSense Custom FIFA 25")
	assert.Equal(t, "manette-dualsense-custom-fifa-25", d.Slug())

	d.SetName("Renamed Pad")
	assert.Equal(t, "renamed-pad", d.Slug(), "create mode re-derives on every name change")
}

func TestEditModeSlugDerivedOnlyWhileEmpty(t *testing.T) {
	rec := &entity.Product{ID: "p1", Name: "Old Pad", Slug: "curated-slug", Description: "d"}
	d := NewEdit(rec)

	d.SetName("New Name")
	assert.Equal(t, "curated-slug", d.Slug(), "a curated slug is never silently overwritten")

	blank := NewEdit(&entity.Product{ID: "p2", Name: "No Slug Yet", Description: "d"})
	blank.SetName("No Slug Yet")
	assert.Equal(t, "no-slug-yet", blank.Slug())
}

func TestCreateDraftSeedsOneDefaultVariant(t *testing.T) {
	d := NewCreate()
	require.Equal(t, 1, d.Variants.Len())
	v, _ := d.Variants.At(0)
	assert.True(t, v.IsDefault)
	assert.False(t, d.SimplePriced())
}

func TestNewEditDecodesLegacyPriceDifference(t *testing.T) {
	rec := &entity.Product{
		ID:          "p1",
		Name:        "Legacy",
		Slug:        "legacy",
		Description: "d",
		Variants: []entity.Variant{
			{ID: "v1", Name: "A", SKU: "A1", Price: floatPtr(4200), IsDefault: true},
			{ID: "v2", Name: "B", SKU: "B1", PriceDifference: floatPtr(900)},
			{ID: "v3", Name: "C", SKU: "C1"},
		},
	}
	d := NewEdit(rec)

	a, _ := d.Variants.At(0)
	b, _ := d.Variants.At(1)
	c, _ := d.Variants.At(2)
	assert.Equal(t, 4200.0, a.Price, "absolute price wins when present")
	assert.Equal(t, 900.0, b.Price, "legacy delta field is the fallback")
	assert.Zero(t, c.Price, "neither field decodes to zero")
}

func TestNewEditHydratesImagesAndSpecs(t *testing.T) {
	rec := &entity.Product{
		ID:          "p1",
		Name:        "Pad",
		Slug:        "pad",
		Description: "d",
		Specs:       map[string]string{"Weight": "280g"},
		Variants: []entity.Variant{
			{ID: "v1", Name: "A", SKU: "A1", Price: floatPtr(100), IsDefault: true,
				Images: []string{"https://cdn/1.jpg", "https://cdn/2.jpg"}},
		},
	}
	d := NewEdit(rec)

	v, _ := d.Variants.At(0)
	assert.Equal(t, []string{"https://cdn/1.jpg", "https://cdn/2.jpg"}, v.Images.URLs())
	assert.False(t, v.Images.HasPending())
	assert.Equal(t, map[string]string{"Weight": "280g"}, d.Specs.Fold())
}

func TestNewEditRepairsDefaultlessRecord(t *testing.T) {
	rec := &entity.Product{
		ID:          "p1",
		Name:        "Pad",
		Slug:        "pad",
		Description: "d",
		Variants: []entity.Variant{
			{ID: "v1", Name: "A", SKU: "A1", Price: floatPtr(100)},
			{ID: "v2", Name: "B", SKU: "B1", Price: floatPtr(200)},
		},
	}
	d := NewEdit(rec)

	assert.Equal(t, 1, countDefaults(d.Variants))
	v, _ := d.Variants.At(0)
	assert.True(t, v.IsDefault)
}

func TestSimplePricedBranchDetection(t *testing.T) {
	rec := &entity.Product{
		ID: "p1", Name: "Pad", Slug: "pad", Description: "d",
		Images: []string{"https://cdn/1.jpg"},
		Stock:  intPtr(4),
	}
	d := NewEdit(rec)
	assert.True(t, d.SimplePriced())

	stock, ok := d.GlobalStock()
	require.True(t, ok)
	assert.Equal(t, 4, stock)
	assert.Equal(t, []string{"https://cdn/1.jpg"}, d.GlobalImages.URLs())

	// Adding a variant flips the draft to the variant-priced branch.
	d.Variants.Add()
	assert.False(t, d.SimplePriced())
}
