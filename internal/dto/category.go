package dto

import "github.com/SscSPs/finance_tracker/internal/core/domain"

// CreateCategoryRequest defines the data needed to create a user category.
type CreateCategoryRequest struct {
	Name  string              `json:"name" binding:"required,max=100"`
	Type  domain.CategoryType `json:"type" binding:"required,oneof=income expense both"`
	Color string              `json:"color" binding:"required,hexcolor"`
	Icon  string              `json:"icon" binding:"omitempty,max=50"`
}

// UpdateCategoryRequest defines the fields that may change on a user category.
type UpdateCategoryRequest struct {
	Name  *string              `json:"name" binding:"omitempty,max=100"`
	Type  *domain.CategoryType `json:"type" binding:"omitempty,oneof=income expense both"`
	Color *string              `json:"color" binding:"omitempty,hexcolor"`
	Icon  *string              `json:"icon" binding:"omitempty,max=50"`
}

// CategoryResponse is the API view of a category.
type CategoryResponse struct {
	CategoryID string              `json:"categoryID"`
	Name       string              `json:"name"`
	Type       domain.CategoryType `json:"type"`
	Color      string              `json:"color"`
	Icon       string              `json:"icon"`
	IsDefault  bool                `json:"isDefault"`
}

func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Type:       c.Type,
		Color:      c.Color,
		Icon:       c.Icon,
		IsDefault:  c.IsDefault,
	}
}

func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return res
}
