package receipt

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/loyalty-tools/receipt-points/pkg/models/api"
	"github.com/loyalty-tools/receipt-points/pkg/models/domain"
	"github.com/loyalty-tools/receipt-points/pkg/services/scoring"
	"github.com/loyalty-tools/receipt-points/pkg/store/records"
)

// Validator turns a wire receipt into a validated domain receipt.
type Validator interface {
	Validate(raw api.Receipt) (domain.Receipt, error)
}

type Handler struct {
	validator Validator
	store     records.Store
}

func NewHandler(validator Validator, store records.Store) *Handler {
	return &Handler{
		validator: validator,
		store:     store,
	}
}

// ProcessReceipt validates the payload, scores it, and stores the result
// under a fresh id.
func (h *Handler) ProcessReceipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var raw api.Receipt
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	validated, err := h.validator.Validate(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	points, err := scoring.Score(validated)
	if err != nil {
		// The validator rejects empty item lists, so this only fires if
		// the two contracts drift apart.
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := uuid.NewString()
	if err := h.store.Put(ctx, id, points); err != nil {
		logger.Error().
			Err(err).
			Str("id", id).
			Msg("failed to store receipt points")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	logger.Info().
		Str("id", id).
		Int64("points", points).
		Msg("receipt processed")

	writeJSON(w, http.StatusOK, api.ProcessReceiptResponse{ID: id})
}

// GetPoints returns the stored point total for an id.
func (h *Handler) GetPoints(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	id := chi.URLParam(r, "id")
	points, err := h.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			writeError(w, http.StatusNotFound, "receipt not found")
			return
		}
		logger.Error().
			Err(err).
			Str("id", id).
			Msg("failed to read receipt points")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, api.PointsResponse{Points: points})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.Error{Error: message})
}
