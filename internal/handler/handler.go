// Package handler contains the HTTP handlers. Handlers decode and validate
// the request payload, call a usecase, and map usecase errors onto a single
// canonical response contract.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/nontawatz/mini-commerce-api/internal/payload"
)

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, payload.MessageResponse{Message: message})
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// respondUnmapped handles errors no handler switch claimed: store or mail
// unavailability becomes 503, everything else a generic 500. Internal detail
// is logged, never sent to the client.
func respondUnmapped(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	if isUnavailable(err) {
		logger.Error().Err(err).Msg("dependency unavailable")
		respondMessage(w, http.StatusServiceUnavailable, "service temporarily unavailable")
		return
	}

	logger.Error().Err(err).Msg("unhandled error")
	respondMessage(w, http.StatusInternalServerError, "something went wrong")
}

func isUnavailable(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) ||
		mongo.IsTimeout(err) ||
		mongo.IsNetworkError(err)
}
