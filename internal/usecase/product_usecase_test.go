package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padstock/internal/domain/entity"
	"padstock/internal/domain/service"
	"padstock/pkg/errors"
)

type memRepo struct {
	products map[string]*entity.Product
	nextID   int
	failErr  error
}

func newMemRepo() *memRepo {
	return &memRepo{products: make(map[string]*entity.Product), nextID: 1}
}

func (m *memRepo) Create(ctx context.Context, p *entity.Product) error {
	if m.failErr != nil {
		return m.failErr
	}
	if p.ID == "" {
		p.ID = "prod-1"
	}
	clone := *p
	m.products[p.ID] = &clone
	return nil
}

func (m *memRepo) Update(ctx context.Context, p *entity.Product) error {
	if m.failErr != nil {
		return m.failErr
	}
	if _, ok := m.products[p.ID]; !ok {
		return errors.NotFound("Product", nil)
	}
	clone := *p
	m.products[p.ID] = &clone
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	clone := *p
	return &clone, nil
}

func (m *memRepo) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	for _, p := range m.products {
		if p.Slug == slug {
			clone := *p
			return &clone, nil
		}
	}
	return nil, errors.NotFound("Product", nil)
}

func (m *memRepo) List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Product, int64, error) {
	var out []*entity.Product
	for _, p := range m.products {
		if want, ok := filter["isFeatured"]; ok && p.IsFeatured != want.(bool) {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (m *memRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return errors.NotFound("Product", nil)
	}
	delete(m.products, id)
	return nil
}

type stubUploader struct {
	urls  []string
	calls int
	err   error
}

func (s *stubUploader) UploadImages(ctx context.Context, files []service.ImageFile) ([]string, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.urls[:len(files)], nil
}

func (s *stubUploader) Close() error { return nil }

func padInput() ProductInput {
	return ProductInput{
		Name:        "Test Pad",
		Description: "Custom controller",
		Specs: []SpecInput{
			{Key: "Connectivity", Value: "Bluetooth"},
			{Key: " ", Value: "ignored"},
		},
		Variants: []VariantInput{
			{
				Name: "Std", SKU: "STD1", Price: 5000, Stock: 10, IsDefault: true,
				NewImages: []service.ImageFile{{Name: "file1.png", ContentType: "image/png", Data: []byte{1}}},
			},
		},
	}
}

func TestCreateProductEndToEnd(t *testing.T) {
	repo := newMemRepo()
	up := &stubUploader{urls: []string{"https://cdn/x.jpg"}}
	uc := NewProductUseCase(repo, up)

	product, warnings, err := uc.CreateProduct(context.Background(), padInput())
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "test-pad", product.Slug)
	require.Len(t, product.Variants, 1)
	assert.Equal(t, []string{"https://cdn/x.jpg"}, product.Variants[0].Images)
	assert.Equal(t, 5000.0, product.BasePrice)
	assert.Equal(t, map[string]string{"Connectivity": "Bluetooth"}, product.Specs)
	assert.Equal(t, 1, up.calls)
	assert.Contains(t, repo.products, product.ID)
}

func TestCreateProductRequiresVariants(t *testing.T) {
	uc := NewProductUseCase(newMemRepo(), &stubUploader{})

	input := padInput()
	input.Variants = nil
	_, _, err := uc.CreateProduct(context.Background(), input)

	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestCreateProductZeroPriceRejectedBeforeUpload(t *testing.T) {
	up := &stubUploader{urls: []string{"u"}}
	uc := NewProductUseCase(newMemRepo(), up)

	input := padInput()
	input.Variants[0].Price = 0
	_, _, err := uc.CreateProduct(context.Background(), input)

	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	assert.Zero(t, up.calls, "fail-fast validation issues no uploads")
}

func TestCreateProductUploadFailureBecomesWarning(t *testing.T) {
	repo := newMemRepo()
	up := &stubUploader{err: assert.AnError}
	uc := NewProductUseCase(repo, up)

	product, warnings, err := uc.CreateProduct(context.Background(), padInput())
	require.NoError(t, err, "a failed image set never blocks the save")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Std")
	assert.Empty(t, product.Variants[0].Images)
}

func TestUpdateProductKeepsCuratedSlug(t *testing.T) {
	repo := newMemRepo()
	price := 4200.0
	repo.products["p1"] = &entity.Product{
		ID: "p1", Name: "Old Pad", Slug: "curated-slug", Description: "d",
		Variants: []entity.Variant{{ID: "v1", Name: "A", SKU: "A1", Price: &price, IsDefault: true, Images: []string{}}},
	}
	uc := NewProductUseCase(repo, &stubUploader{})

	input := ProductInput{
		Name:        "Renamed Pad",
		Description: "still described",
		Variants: []VariantInput{
			{ID: "v1", Name: "A", SKU: "A1", Price: 4200, Stock: 3, IsDefault: true},
		},
	}
	product, _, err := uc.UpdateProduct(context.Background(), "p1", input)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Pad", product.Name)
	assert.Equal(t, "curated-slug", product.Slug)
}

func TestUpdateProductMigratesLegacyPrice(t *testing.T) {
	repo := newMemRepo()
	delta := 900.0
	repo.products["p1"] = &entity.Product{
		ID: "p1", Name: "Legacy", Slug: "legacy", Description: "d",
		Variants: []entity.Variant{
			{ID: "v1", Name: "A", SKU: "A1", PriceDifference: &delta, IsDefault: true, Images: []string{}},
		},
	}
	uc := NewProductUseCase(repo, &stubUploader{})

	// The admin saves without touching the price: the hydrated draft already
	// resolved the legacy delta into an absolute price.
	input := ProductInput{
		Name:        "Legacy",
		Description: "d",
		Variants: []VariantInput{
			{ID: "v1", Name: "A", SKU: "A1", Price: 900, Stock: 0, IsDefault: true},
		},
	}
	product, _, err := uc.UpdateProduct(context.Background(), "p1", input)
	require.NoError(t, err)

	saved := repo.products["p1"]
	require.NotNil(t, saved.Variants[0].Price)
	assert.Equal(t, 900.0, *saved.Variants[0].Price)
	assert.Nil(t, saved.Variants[0].PriceDifference, "only the absolute price is emitted going forward")
	assert.Equal(t, 900.0, product.BasePrice)
}

func TestUpdateProductSimplePricedLegacyBranch(t *testing.T) {
	repo := newMemRepo()
	stock := 3
	repo.products["p1"] = &entity.Product{
		ID: "p1", Name: "Simple", Slug: "simple", Description: "d",
		Images: []string{"https://cdn/old.jpg"},
		Stock:  &stock,
	}
	uc := NewProductUseCase(repo, &stubUploader{})

	newStock := 12
	input := ProductInput{
		Name:        "Simple",
		Description: "d",
		Images:      []string{"https://cdn/old.jpg"},
		Stock:       &newStock,
	}
	product, _, err := uc.UpdateProduct(context.Background(), "p1", input)
	require.NoError(t, err)
	require.NotNil(t, product.Stock)
	assert.Equal(t, 12, *product.Stock)
	assert.Equal(t, []string{"https://cdn/old.jpg"}, product.Images)
	assert.Empty(t, product.Variants)
}

func TestGetProductNormalizesLegacyPrices(t *testing.T) {
	repo := newMemRepo()
	delta := 1500.0
	repo.products["p1"] = &entity.Product{
		ID: "p1", Name: "Legacy", Slug: "legacy", Description: "d",
		Variants: []entity.Variant{{ID: "v1", Name: "A", SKU: "A1", PriceDifference: &delta}},
	}
	uc := NewProductUseCase(repo, &stubUploader{})

	product, err := uc.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, product.Variants[0].Price)
	assert.Equal(t, 1500.0, *product.Variants[0].Price)
	assert.Nil(t, product.Variants[0].PriceDifference)
}

func TestSetFeatured(t *testing.T) {
	repo := newMemRepo()
	repo.products["p1"] = &entity.Product{ID: "p1", Name: "Pad", Slug: "pad", Description: "d"}
	uc := NewProductUseCase(repo, &stubUploader{})

	product, err := uc.SetFeatured(context.Background(), "p1", true)
	require.NoError(t, err)
	assert.True(t, product.IsFeatured)
	assert.True(t, repo.products["p1"].IsFeatured)
}
