package draft

import (
	"context"
	"fmt"
	"strings"
	"time"

	"padstock/internal/domain/entity"
	"padstock/internal/domain/repository"
	"padstock/internal/domain/service"
	"padstock/pkg/errors"
	"padstock/pkg/logger"
)

// State of one submission attempt.
type State int

const (
	StateEditing State = iota
	StateValidating
	StateUploading
	StateAssembling
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateValidating:
		return "validating"
	case StateUploading:
		return "uploading"
	case StateAssembling:
		return "assembling"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Submitter drives a draft through validation, the differential image
// uploads, payload assembly and the final create/update call. The draft is
// never discarded: any failure returns control to editing with all state
// intact so the admin can correct and retry.
type Submitter struct {
	draft    *ProductDraft
	uploader service.ImageUploader
	repo     repository.ProductRepository

	state      State
	uploadErrs []*errors.AppError
}

func NewSubmitter(d *ProductDraft, uploader service.ImageUploader, repo repository.ProductRepository) *Submitter {
	return &Submitter{
		draft:    d,
		uploader: uploader,
		repo:     repo,
		state:    StateEditing,
	}
}

func (s *Submitter) State() State {
	return s.state
}

// UploadErrors reports the per-image-set failures of the last submission.
// Each is scoped to one variant (or "global"); none of them aborts the save.
func (s *Submitter) UploadErrors() []*errors.AppError {
	return s.uploadErrs
}

// Submit runs the full pipeline. Validation failures abort before any network
// call. Upload failures are collected per image set and the affected images
// are excluded from the payload. A rejected create/update surfaces the
// collaborator's message and leaves the draft editable for retry.
func (s *Submitter) Submit(ctx context.Context) (*entity.Product, error) {
	if s.state == StateSucceeded {
		return nil, errors.Conflict("submission already completed")
	}
	if s.state != StateEditing && s.state != StateFailed {
		return nil, errors.Conflict("submission already in progress")
	}
	s.uploadErrs = nil

	s.state = StateValidating
	if err := s.validate(); err != nil {
		s.state = StateEditing
		return nil, err
	}

	s.state = StateUploading
	images, variantImages := s.upload(ctx)

	s.state = StateAssembling
	product := s.assemble(images, variantImages)

	s.state = StateSubmitting
	var err error
	if s.draft.Mode() == ModeCreate {
		err = s.repo.Create(ctx, product)
	} else {
		err = s.repo.Update(ctx, product)
	}
	if err != nil {
		s.state = StateFailed
		logger.Error("Product submission rejected: %v", err)
		if _, ok := err.(*errors.AppError); ok {
			// Collaborator message surfaces verbatim.
			return nil, err
		}
		return nil, errors.Internal("failed to save product", err)
	}

	s.state = StateSucceeded
	return product, nil
}

// validate is the fail-fast gate: no network traffic happens unless the whole
// draft is coherent.
func (s *Submitter) validate() error {
	d := s.draft
	if strings.TrimSpace(d.Name()) == "" {
		return errors.Validation("name", "name is required")
	}
	if strings.TrimSpace(d.Description()) == "" {
		return errors.Validation("description", "description is required")
	}

	if d.SimplePriced() {
		// Edit-mode legacy branch: the product carries global images and
		// stock directly.
		stock, ok := d.GlobalStock()
		if !ok || stock < 0 {
			return errors.Validation("stock", "a non-negative stock is required")
		}
		if d.GlobalImages.Len() == 0 {
			return errors.Validation("images", "at least one product image is required")
		}
		return nil
	}

	d.Variants.Normalize()
	defaults := 0
	for i, v := range d.Variants.All() {
		field := fmt.Sprintf("variants[%d]", i)
		if strings.TrimSpace(v.Name) == "" {
			return errors.Validation(field+".name", "variant name is required")
		}
		if strings.TrimSpace(v.SKU) == "" {
			return errors.Validation(field+".sku", "variant SKU is required")
		}
		if v.Price < 0 {
			return errors.Validation(field+".price", "variant price cannot be negative")
		}
		if v.Stock < 0 {
			return errors.Validation(field+".stock", "variant stock cannot be negative")
		}
		if v.IsDefault {
			defaults++
		}
	}
	if defaults != 1 {
		// Normalize repairs every reachable shape; anything else means the
		// collection was corrupted outside the manager.
		return errors.Validation("variants", "exactly one default variant is required")
	}

	base, _ := d.Variants.BasePrice()
	if !validBasePrice(d.Mode(), base) {
		return errors.Validation("basePrice", "the default variant must have a positive price")
	}
	return nil
}

// upload runs every image set's differential upload sequentially, one
// multipart body in flight at a time. A failing set is reported against its
// owner and its pending images are dropped; the remaining sets still upload.
func (s *Submitter) upload(ctx context.Context) ([]string, map[int][]string) {
	d := s.draft
	if d.SimplePriced() {
		urls, err := d.GlobalImages.UploadPending(ctx, s.uploader, "global")
		if err != nil {
			s.recordUploadError(err)
		}
		return urls, nil
	}

	variantImages := make(map[int][]string, d.Variants.Len())
	for i, v := range d.Variants.All() {
		scope := fmt.Sprintf("variant %d", i+1)
		if strings.TrimSpace(v.Name) != "" {
			scope = v.Name
		}
		urls, err := v.Images.UploadPending(ctx, s.uploader, scope)
		if err != nil {
			s.recordUploadError(err)
		}
		variantImages[i] = urls
	}
	return nil, variantImages
}

func (s *Submitter) recordUploadError(err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		s.uploadErrs = append(s.uploadErrs, appErr)
		return
	}
	s.uploadErrs = append(s.uploadErrs, errors.Upload("unknown", err))
}

// assemble builds the outbound record from validated, post-upload state.
func (s *Submitter) assemble(images []string, variantImages map[int][]string) *entity.Product {
	d := s.draft
	now := time.Now()
	product := &entity.Product{
		ID:          d.ID(),
		Name:        strings.TrimSpace(d.Name()),
		Slug:        d.Slug(),
		Description: strings.TrimSpace(d.Description()),
		Brand:       strings.TrimSpace(d.Brand()),
		Images:      []string{},
		IsFeatured:  d.IsFeatured(),
		Specs:       d.Specs.Fold(),
		UpdatedAt:   now,
	}

	if d.SimplePriced() {
		if images == nil {
			images = []string{}
		}
		product.Images = images
		stock, _ := d.GlobalStock()
		product.Stock = &stock
		// Base price is backend-defined for simple-priced products; this
		// service omits it (zero value is dropped from the payload).
		return product
	}

	variants := make([]entity.Variant, 0, d.Variants.Len())
	for i, v := range d.Variants.All() {
		price := v.Price
		if variantImages[i] == nil {
			variantImages[i] = []string{}
		}
		variants = append(variants, entity.Variant{
			ID:        v.ID,
			Name:      strings.TrimSpace(v.Name),
			SKU:       strings.TrimSpace(v.SKU),
			Price:     &price,
			Stock:     v.Stock,
			Images:    variantImages[i],
			IsDefault: v.IsDefault,
		})
	}
	product.Variants = variants
	product.BasePrice, _ = d.Variants.BasePrice()
	return product
}
