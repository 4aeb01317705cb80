package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/nontawatz/mini-commerce-api/internal/payload"
	"github.com/nontawatz/mini-commerce-api/internal/usecase"
	"github.com/nontawatz/mini-commerce-api/shared/validator"
)

// AuthHandler serves signup and signin.
type AuthHandler struct {
	logger      *zerolog.Logger
	validate    *validator.Validator
	authUsecase usecase.AuthUsecase
}

func NewAuthHandler(
	logger *zerolog.Logger,
	validate *validator.Validator,
	authUsecase usecase.AuthUsecase,
) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		validate:    validate,
		authUsecase: authUsecase,
	}
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
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

	user, token, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrUserAlreadyExists) {
			respondMessage(w, http.StatusConflict, "an account with this email already exists")
			return
		}

		respondUnmapped(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, payload.AuthResponse{
		User:  payload.NewUserResponse(user),
		Token: token,
	})
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
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

	user, token, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			respondMessage(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		respondUnmapped(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, payload.AuthResponse{
		User:  payload.NewUserResponse(user),
		Token: token,
	})
}
