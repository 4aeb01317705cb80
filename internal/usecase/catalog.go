package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/nontawatz/mini-commerce-api/internal/model"
	"github.com/nontawatz/mini-commerce-api/internal/repository"
)

// CatalogUsecase defines category and product operations.
type CatalogUsecase interface {
	CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
	UpdateCategory(ctx context.Context, id string, params repository.UpdateCategoryParams) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	ListProducts(ctx context.Context, page, limit int64) (*ProductPage, error)
	SearchProducts(ctx context.Context, params repository.SearchProductsParams) ([]*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// ProductPage is one page of the product listing.
type ProductPage struct {
	Products    []*model.Product
	CurrentPage int64
	TotalPages  int64
	Total       int64
}

var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
	ErrProductNotFound       = errors.New("product not found")
)

type catalogUsecase struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

func NewCatalogUsecase(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
) CatalogUsecase {
	return &catalogUsecase{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

func (u *catalogUsecase) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	created, err := u.categoryRepo.CreateCategory(ctx, category)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrCategoryAlreadyExists
		}
		return nil, err
	}

	return created, nil
}

func (u *catalogUsecase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	category, err := u.categoryRepo.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	return category, nil
}

func (u *catalogUsecase) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return u.categoryRepo.ListCategories(ctx)
}

func (u *catalogUsecase) UpdateCategory(
	ctx context.Context,
	id string,
	params repository.UpdateCategoryParams,
) (*model.Category, error) {
	category, err := u.categoryRepo.UpdateCategory(ctx, id, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrCategoryAlreadyExists
		}
		return nil, err
	}

	return category, nil
}

func (u *catalogUsecase) DeleteCategory(ctx context.Context, id string) error {
	if err := u.categoryRepo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrCategoryNotFound
		}
		return err
	}

	return nil
}

func (u *catalogUsecase) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	return u.productRepo.CreateProduct(ctx, product)
}

func (u *catalogUsecase) ListProducts(ctx context.Context, page, limit int64) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	total, err := u.productRepo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}

	products, err := u.productRepo.ListProducts(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	return &ProductPage{
		Products:    products,
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
	}, nil
}

func (u *catalogUsecase) SearchProducts(
	ctx context.Context,
	params repository.SearchProductsParams,
) ([]*model.Product, error) {
	return u.productRepo.SearchProducts(ctx, params)
}

func (u *catalogUsecase) DeleteProduct(ctx context.Context, id string) error {
	if err := u.productRepo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrProductNotFound
		}
		return err
	}

	return nil
}
