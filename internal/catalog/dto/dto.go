package dto

import "github.com/luxhub/project-service/internal/model"

type ProductFilters struct {
	SearchQuery   string
	AvailableOnly bool
	Page          int
	PageSize      int
}

type ProductListResponse struct {
	Products []model.Product `json:"products"`
	Total    int             `json:"total"`
}
