package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/nontawatz/mini-commerce-api/internal/model"
	"github.com/nontawatz/mini-commerce-api/internal/payload"
	"github.com/nontawatz/mini-commerce-api/internal/repository"
	"github.com/nontawatz/mini-commerce-api/internal/usecase"
	"github.com/nontawatz/mini-commerce-api/shared/validator"
)

// CategoryHandler serves category CRUD.
type CategoryHandler struct {
	logger         *zerolog.Logger
	validate       *validator.Validator
	catalogUsecase usecase.CatalogUsecase
}

func NewCategoryHandler(
	logger *zerolog.Logger,
	validate *validator.Validator,
	catalogUsecase usecase.CatalogUsecase,
) *CategoryHandler {
	return &CategoryHandler{
		logger:         logger,
		validate:       validate,
		catalogUsecase: catalogUsecase,
	}
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if fields := h.validate.Validate(req); fields != nil {
		respondJSON(w, http.StatusBadRequest, payload.ValidationErrorResponse{
			Message: "validation failed",
			Fields:  fields,
		})
		return
	}

	category, err := h.catalogUsecase.CreateCategory(r.Context(), &model.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrCategoryAlreadyExists) {
			respondMessage(w, http.StatusConflict, "a category with this name already exists")
			return
		}

		respondUnmapped(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, payload.NewCategoryResponse(category))
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogUsecase.ListCategories(r.Context())
	if err != nil {
		respondUnmapped(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, payload.NewCategoryListResponse(categories))
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.catalogUsecase.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, usecase.ErrCategoryNotFound) {
			respondMessage(w, http.StatusNotFound, "category not found")
			return
		}

		respondUnmapped(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, payload.NewCategoryResponse(category))
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if fields := h.validate.Validate(req); fields != nil {
		respondJSON(w, http.StatusBadRequest, payload.ValidationErrorResponse{
			Message: "validation failed",
			Fields:  fields,
		})
		return
	}

	if req.Name == nil && req.Description == nil {
		respondMessage(w, http.StatusBadRequest, "no category fields to update")
		return
	}

	category, err := h.catalogUsecase.UpdateCategory(r.Context(), chi.URLParam(r, "id"), repository.UpdateCategoryParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCategoryNotFound):
			respondMessage(w, http.StatusNotFound, "category not found")
		case errors.Is(err, usecase.ErrCategoryAlreadyExists):
			respondMessage(w, http.StatusConflict, "a category with this name already exists")
		default:
			respondUnmapped(w, h.logger, err)
		}
		return
	}

	respondJSON(w, http.StatusOK, payload.NewCategoryResponse(category))
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogUsecase.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, usecase.ErrCategoryNotFound) {
			respondMessage(w, http.StatusNotFound, "category not found")
			return
		}

		respondUnmapped(w, h.logger, err)
		return
	}

	respondMessage(w, http.StatusOK, "category deleted")
}
