package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
	Sort     string
}

var allowedSorts = map[string]bool{
	"name_asc":       true,
	"name_desc":      true,
	"basePrice_asc":  true,
	"basePrice_desc": true,
	"createdAt_asc":  true,
	"createdAt_desc": true,
}

// GetPaginationParams extracts page/limit/sort from the request, clamping the
// page size and discarding sort keys the catalog index cannot serve.
func GetPaginationParams(c echo.Context) PaginationParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("limit"))

	if page <= 0 {
		page = 1
	}

	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	sort := c.QueryParam("sort")
	if !allowedSorts[sort] {
		sort = ""
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
		Sort:     sort,
	}
}
