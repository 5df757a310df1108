package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/labstack/echo/v4"

	"padstock/internal/domain/service"
	"padstock/internal/draft"
	"padstock/internal/usecase"
	"padstock/pkg/errors"
	"padstock/pkg/logger"
	"padstock/pkg/response"
	"padstock/pkg/utils"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
	maxFileSize    int64
}

func NewProductHandler(productUseCase *usecase.ProductUseCase, maxFileSize int64) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
		maxFileSize:    maxFileSize,
	}
}

type specRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type variantRequest struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	SKU       string   `json:"sku"`
	Price     float64  `json:"price" validate:"gte=0"`
	Stock     int      `json:"stock" validate:"gte=0"`
	IsDefault bool     `json:"isDefault"`
	Images    []string `json:"images" validate:"max=5,dive,url"`
}

// productRequest is the JSON half of the multipart product form. The image
// files travel beside it under "images" (global) and "variant_images_<i>"
// (per variant) keys; the engine owns the deeper validation.
type productRequest struct {
	Name        string           `json:"name" validate:"required"`
	Slug        string           `json:"slug"`
	Description string           `json:"description" validate:"required"`
	Brand       string           `json:"brand"`
	IsFeatured  bool             `json:"isFeatured"`
	Specs       []specRequest    `json:"specs"`
	Variants    []variantRequest `json:"variants" validate:"dive"`
	Stock       *int             `json:"stock"`
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	input, err := h.bindProductForm(c)
	if err != nil {
		return response.Error(c, err)
	}

	product, warnings, err := h.productUseCase.CreateProduct(c.Request().Context(), *input)
	if err != nil {
		return response.Error(c, err)
	}

	if len(warnings) > 0 {
		return response.CreatedWithWarnings(c, product, warnings)
	}
	return response.Created(c, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id := c.Param("id")

	input, err := h.bindProductForm(c)
	if err != nil {
		return response.Error(c, err)
	}

	product, warnings, err := h.productUseCase.UpdateProduct(c.Request().Context(), id, *input)
	if err != nil {
		return response.Error(c, err)
	}

	if len(warnings) > 0 {
		return response.SuccessWithWarnings(c, product, warnings)
	}
	return response.Success(c, product)
}

// bindProductForm decodes the "product" JSON field of a multipart form and
// collects the attached image files into the use case input.
func (h *ProductHandler) bindProductForm(c echo.Context) (*usecase.ProductInput, error) {
	payload := c.FormValue("product")
	if payload == "" {
		return nil, errors.BadRequest("missing product form field", nil)
	}

	var req productRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return nil, errors.BadRequest("malformed product JSON", err)
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.BadRequest("invalid multipart form", err)
	}

	input := &usecase.ProductInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Brand:       req.Brand,
		IsFeatured:  req.IsFeatured,
		Stock:       req.Stock,
	}
	for _, s := range req.Specs {
		input.Specs = append(input.Specs, usecase.SpecInput{Key: s.Key, Value: s.Value})
	}

	for i, v := range req.Variants {
		newImages, err := h.readFiles(form.File[fmt.Sprintf("variant_images_%d", i)])
		if err != nil {
			return nil, err
		}
		input.Variants = append(input.Variants, usecase.VariantInput{
			ID:        v.ID,
			Name:      v.Name,
			SKU:       v.SKU,
			Price:     v.Price,
			Stock:     v.Stock,
			IsDefault: v.IsDefault,
			Images:    v.Images,
			NewImages: newImages,
		})
	}

	if len(req.Variants) == 0 {
		input.Images = imagesOrEmpty(form.Value["images"])
		if len(input.Images) > draft.MaxImagesPerSet {
			return nil, errors.Validation("images",
				fmt.Sprintf("at most %d images per set", draft.MaxImagesPerSet))
		}
		newImages, err := h.readFiles(form.File["images"])
		if err != nil {
			return nil, err
		}
		input.NewImages = newImages
	}

	return input, nil
}

func imagesOrEmpty(urls []string) []string {
	if urls == nil {
		return []string{}
	}
	return urls
}

func (h *ProductHandler) readFiles(headers []*multipart.FileHeader) ([]service.ImageFile, error) {
	var files []service.ImageFile
	for _, fh := range headers {
		if fh.Size > h.maxFileSize {
			return nil, errors.BadRequest(
				fmt.Sprintf("file %s exceeds the maximum allowed size (%dMB)", fh.Filename, h.maxFileSize/(1024*1024)), nil)
		}
		contentType := fh.Header.Get("Content-Type")
		if !isAllowedImageType(contentType) {
			return nil, errors.BadRequest(fmt.Sprintf("file %s has unsupported type %s", fh.Filename, contentType), nil)
		}

		src, err := fh.Open()
		if err != nil {
			return nil, errors.Internal("unable to read uploaded file", err)
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return nil, errors.Internal("unable to read uploaded file", err)
		}

		files = append(files, service.ImageFile{
			Name:        fh.Filename,
			ContentType: contentType,
			Data:        data,
		})
	}
	return files, nil
}

func isAllowedImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.productUseCase.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	params := utils.GetPaginationParams(c)
	featuredOnly := c.QueryParam("featured") == "true"

	products, total, err := h.productUseCase.ListProducts(
		c.Request().Context(), featuredOnly, params.Sort, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, products, total, params.Page, params.PageSize)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id := c.Param("id")
	if err := h.productUseCase.DeleteProduct(c.Request().Context(), id); err != nil {
		return response.Error(c, err)
	}
	logger.Info("Product %s deleted", id)
	return response.Success(c, map[string]string{"id": id})
}

type featureRequest struct {
	IsFeatured bool `json:"isFeatured"`
}

func (h *ProductHandler) FeatureProduct(c echo.Context) error {
	var req featureRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.productUseCase.SetFeatured(c.Request().Context(), c.Param("id"), req.IsFeatured)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}
