package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/nontawatz/mini-commerce-api/internal/payload"
	"github.com/nontawatz/mini-commerce-api/internal/usecase"
	"github.com/nontawatz/mini-commerce-api/shared/validator"
)

// PasswordResetHandler serves the OTP reset flow.
type PasswordResetHandler struct {
	logger               *zerolog.Logger
	validate             *validator.Validator
	passwordResetUsecase usecase.PasswordResetUsecase
}

func NewPasswordResetHandler(
	logger *zerolog.Logger,
	validate *validator.Validator,
	passwordResetUsecase usecase.PasswordResetUsecase,
) *PasswordResetHandler {
	return &PasswordResetHandler{
		logger:               logger,
		validate:             validate,
		passwordResetUsecase: passwordResetUsecase,
	}
}

// ForgotPassword answers uniformly whether or not the account exists. The
// reset code travels by mail only and is never part of the response body.
func (h *PasswordResetHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ForgotPasswordRequest
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

	if err := h.passwordResetUsecase.RequestPasswordReset(r.Context(), req.Email); err != nil {
		if errors.Is(err, usecase.ErrMailUnavailable) {
			h.logger.Error().Err(err).Msg("failed to deliver reset code")
			respondMessage(w, http.StatusServiceUnavailable, "could not deliver reset code, try again later")
			return
		}

		respondUnmapped(w, h.logger, err)
		return
	}

	respondMessage(w, http.StatusOK, "if the account exists, a reset code has been sent")
}

func (h *PasswordResetHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ResetPasswordRequest
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

	err := h.passwordResetUsecase.ResetPassword(r.Context(), req.Email, req.OTP, req.NewPassword)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidResetCode) {
			respondMessage(w, http.StatusBadRequest, "invalid OTP")
			return
		}

		respondUnmapped(w, h.logger, err)
		return
	}

	respondMessage(w, http.StatusOK, "password reset successful")
}
