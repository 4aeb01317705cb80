package handler

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nontawatz/mini-commerce-api/internal/model"
	"github.com/nontawatz/mini-commerce-api/internal/payload"
	"github.com/nontawatz/mini-commerce-api/internal/repository"
	"github.com/nontawatz/mini-commerce-api/internal/usecase"
)

// maxUploadSize bounds the multipart form held in memory.
const maxUploadSize = 10 << 20

// ProductHandler serves the product catalog and image upload.
type ProductHandler struct {
	logger         *zerolog.Logger
	catalogUsecase usecase.CatalogUsecase
	uploadDir      string
}

func NewProductHandler(
	logger *zerolog.Logger,
	catalogUsecase usecase.CatalogUsecase,
	uploadDir string,
) *ProductHandler {
	return &ProductHandler{
		logger:         logger,
		catalogUsecase: catalogUsecase,
		uploadDir:      uploadDir,
	}
}

// Create accepts a multipart form with title, price and an image file. The
// file is stored under the upload directory with a generated name.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	title := r.FormValue("title")
	priceStr := r.FormValue("price")
	if title == "" || priceStr == "" {
		respondMessage(w, http.StatusBadRequest, "title and price are required")
		return
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price <= 0 {
		respondMessage(w, http.StatusBadRequest, "price must be a positive number")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	imagePath, err := h.saveUpload(file, header.Filename)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to store uploaded image")
		respondMessage(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	product, err := h.catalogUsecase.CreateProduct(r.Context(), &model.Product{
		Title: title,
		Price: price,
		Image: imagePath,
	})
	if err != nil {
		respondUnmapped(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, payload.NewProductResponse(product))
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page := parseInt64Query(r, "page", 1)
	limit := parseInt64Query(r, "limit", 10)

	productPage, err := h.catalogUsecase.ListProducts(r.Context(), page, limit)
	if err != nil {
		respondUnmapped(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, payload.ProductPageResponse{
		Products:    payload.NewProductListResponse(productPage.Products),
		CurrentPage: productPage.CurrentPage,
		TotalPages:  productPage.TotalPages,
		Total:       productPage.Total,
	})
}

func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	params := repository.SearchProductsParams{
		Query:    r.URL.Query().Get("query"),
		MinPrice: 0,
		MaxPrice: 100000,
	}

	if raw := r.URL.Query().Get("minPrice"); raw != "" {
		minPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "minPrice must be a number")
			return
		}
		params.MinPrice = minPrice
	}

	if raw := r.URL.Query().Get("maxPrice"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "maxPrice must be a number")
			return
		}
		params.MaxPrice = maxPrice
	}

	products, err := h.catalogUsecase.SearchProducts(r.Context(), params)
	if err != nil {
		respondUnmapped(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, payload.NewProductListResponse(products))
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogUsecase.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, usecase.ErrProductNotFound) {
			respondMessage(w, http.StatusNotFound, "product not found")
			return
		}

		respondUnmapped(w, h.logger, err)
		return
	}

	respondMessage(w, http.StatusOK, "product deleted")
}

func (h *ProductHandler) saveUpload(file io.Reader, originalName string) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + filepath.Ext(originalName)
	path := filepath.Join(h.uploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	return path, nil
}

func parseInt64Query(r *http.Request, key string, fallback int64) int64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 1 {
		return fallback
	}

	return value
}
