package payload

import (
	"time"

	"github.com/nontawatz/mini-commerce-api/internal/model"
)

type CreateCategoryRequest struct {
	Name        string `json:"name"        validate:"required,min=1,max=128"`
	Description string `json:"description" validate:"max=1024"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=1,max=128"`
	Description *string `json:"description" validate:"omitempty,max=1024"`
}

type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewCategoryResponse(category *model.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID.Hex(),
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
	}
}

func NewCategoryListResponse(categories []*model.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, NewCategoryResponse(category))
	}
	return out
}

type ProductResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewProductResponse(product *model.Product) ProductResponse {
	return ProductResponse{
		ID:        product.ID.Hex(),
		Title:     product.Title,
		Price:     product.Price,
		Image:     product.Image,
		CreatedAt: product.CreatedAt,
	}
}

func NewProductListResponse(products []*model.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, NewProductResponse(product))
	}
	return out
}

type ProductPageResponse struct {
	Products    []ProductResponse `json:"products"`
	CurrentPage int64             `json:"currentPage"`
	TotalPages  int64             `json:"totalPages"`
	Total       int64             `json:"total"`
}
