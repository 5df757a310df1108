package usecase

import (
	"context"

	"padstock/internal/domain/entity"
	"padstock/internal/domain/repository"
	"padstock/internal/domain/service"
	"padstock/internal/draft"
	"padstock/pkg/errors"
	"padstock/pkg/logger"
)

type ProductUseCase struct {
	productRepo repository.ProductRepository
	uploader    service.ImageUploader
}

func NewProductUseCase(productRepo repository.ProductRepository, uploader service.ImageUploader) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		uploader:    uploader,
	}
}

type SpecInput struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// VariantInput carries one variant's submitted state. Images are the
// persisted URLs the admin kept; NewImages are the freshly selected files
// still pending upload.
type VariantInput struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	SKU       string  `json:"sku"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	IsDefault bool    `json:"isDefault"`
	Images    []string
	NewImages []service.ImageFile
}

type ProductInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Brand       string `json:"brand"`
	IsFeatured  bool   `json:"isFeatured"`
	Specs       []SpecInput
	Variants    []VariantInput
	Images      []string
	NewImages   []service.ImageFile
	Stock       *int `json:"stock"`
}

// CreateProduct runs a full create-mode edit session in one shot: seed the
// draft, apply the submitted state, submit. The returned warnings carry the
// per-variant upload failures that did not block the save.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, input ProductInput) (*entity.Product, []string, error) {
	if len(input.Variants) == 0 {
		return nil, nil, errors.Validation("variants", "at least one variant is required")
	}

	d := draft.NewCreate()
	if err := applyInput(d, input); err != nil {
		return nil, nil, err
	}

	return uc.submit(ctx, d)
}

// UpdateProduct hydrates an edit-mode draft from the persisted record (the
// legacy-decode boundary) and applies the submitted state over it.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id string, input ProductInput) (*entity.Product, []string, error) {
	rec, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	d := draft.NewEdit(rec)
	if err := applyInput(d, input); err != nil {
		return nil, nil, err
	}

	return uc.submit(ctx, d)
}

func (uc *ProductUseCase) submit(ctx context.Context, d *draft.ProductDraft) (*entity.Product, []string, error) {
	sub := draft.NewSubmitter(d, uc.uploader, uc.productRepo)
	product, err := sub.Submit(ctx)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	for _, uploadErr := range sub.UploadErrors() {
		warnings = append(warnings, uploadErr.Message)
	}
	if len(warnings) > 0 {
		logger.Warn("Product %s saved with %d upload failure(s)", product.ID, len(warnings))
	}
	return product, warnings, nil
}

func applyInput(d *draft.ProductDraft, input ProductInput) error {
	d.SetName(input.Name)
	if input.Slug != "" {
		d.SetSlug(input.Slug)
	}
	d.SetDescription(input.Description)
	d.SetBrand(input.Brand)
	d.SetFeatured(input.IsFeatured)

	entries := make([]draft.SpecEntry, 0, len(input.Specs))
	for _, s := range input.Specs {
		entries = append(entries, draft.SpecEntry{Key: s.Key, Value: s.Value})
	}
	d.Specs.Set(entries)

	if err := applyVariants(d, input.Variants); err != nil {
		return err
	}

	if len(input.Variants) == 0 {
		if input.Stock != nil {
			d.SetGlobalStock(*input.Stock)
		}
		d.GlobalImages = draft.NewImageSetFromURLs(input.Images)
		if len(input.NewImages) > 0 {
			if err := d.GlobalImages.AddFiles(input.NewImages...); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyVariants reshapes the draft's variant collection to mirror the
// submitted list, index for index, then replays the submitted default flag.
func applyVariants(d *draft.ProductDraft, inputs []VariantInput) error {
	for d.Variants.Len() > len(inputs) {
		if err := d.Variants.Remove(d.Variants.Len() - 1); err != nil {
			return err
		}
	}
	for d.Variants.Len() < len(inputs) {
		d.Variants.Add()
	}

	var filesErr error
	for i, in := range inputs {
		in := in
		err := d.Variants.Update(i, func(v *draft.Variant) {
			v.ID = in.ID
			v.Name = in.Name
			v.SKU = in.SKU
			v.Price = in.Price
			v.Stock = in.Stock
			v.IsDefault = false
			v.Images = draft.NewImageSetFromURLs(in.Images)
			if filesErr == nil && len(in.NewImages) > 0 {
				filesErr = v.Images.AddFiles(in.NewImages...)
			}
		})
		if err != nil {
			return err
		}
		if filesErr != nil {
			return filesErr
		}
	}

	for i, in := range inputs {
		if in.IsDefault {
			return d.Variants.SetDefault(i, true)
		}
	}
	// No submitted default: submission-time normalization promotes the
	// first variant.
	return nil
}

func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	normalizeLegacyPrices(product)
	return product, nil
}

func (uc *ProductUseCase) ListProducts(ctx context.Context, featuredOnly bool, sort string, limit, offset int) ([]*entity.Product, int64, error) {
	filter := make(map[string]interface{})
	if featuredOnly {
		filter["isFeatured"] = true
	}

	products, total, err := uc.productRepo.List(ctx, filter, sort, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for _, p := range products {
		normalizeLegacyPrices(p)
	}
	return products, total, nil
}

func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	return uc.productRepo.Delete(ctx, id)
}

func (uc *ProductUseCase) SetFeatured(ctx context.Context, id string, isFeatured bool) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.IsFeatured = isFeatured
	normalizeLegacyPrices(product)
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// normalizeLegacyPrices makes API responses carry the absolute price even for
// records persisted before the price migration.
func normalizeLegacyPrices(product *entity.Product) {
	for i := range product.Variants {
		v := &product.Variants[i]
		price := v.UnitPrice()
		v.Price = &price
		v.PriceDifference = nil
	}
}
