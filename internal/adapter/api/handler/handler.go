package handler

import (
	"padstock/internal/usecase"
)

var (
	productHandler *ProductHandler
)

func Setup(productUseCase *usecase.ProductUseCase, maxUploadBytes int64) {
	productHandler = NewProductHandler(productUseCase, maxUploadBytes)
}

func GetProductHandler() *ProductHandler {
	return productHandler
}
