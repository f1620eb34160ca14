package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"movie-watchlist/internal/dto/request"
	"movie-watchlist/internal/usecase"
	"movie-watchlist/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type WatchlistHandler struct {
	service usecase.WatchlistService
	log     *zap.Logger
}

func NewWatchlistHandler(service usecase.WatchlistService, log *zap.Logger) *WatchlistHandler {
	return &WatchlistHandler{
		service: service,
		log:     log.With(zap.String("handler", "watchlist")),
	}
}

// watchlistListEnvelope extends the standard envelope with the
// filter-invariant counts the list endpoint exposes at the top level.
type watchlistListEnvelope struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	Data             any    `json:"data"`
	ReviewedCount    int    `json:"reviewed_count"`
	NotReviewedCount int    `json:"not_reviewed_count"`
}

// GetWatchlist handles GET /api/watchlist (protected)
func (h *WatchlistHandler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	filter := query.Get("filter")
	if filter == "" {
		filter = request.FilterAll
	}
	page := utils.ParseInt(query.Get("page"), 1)

	result, err := h.service.FetchWatchlists(r.Context(), userID, filter, page, r.URL.Path, r.URL.RawQuery)
	if err != nil {
		h.handleServiceError(w, err, "fetch watchlist")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(watchlistListEnvelope{
		Success:          true,
		Message:          "Watchlist fetched successfully.",
		Data:             result.Paginated,
		ReviewedCount:    result.ReviewedCount,
		NotReviewedCount: result.NotReviewedCount,
	})
}

// AddToWatchlist handles POST /api/watchlist (protected)
func (h *WatchlistHandler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.AddWatchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseUnprocessableEntity(w, "Validation failed", validationErrors)
		return
	}

	created, message, err := h.service.AddToWatchlist(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "add to watchlist")
		return
	}

	utils.ResponseCreated(w, message, created)
}

// UpdateWatchlist handles PUT /api/watchlist/{watchlistId}/{reviewId} (protected)
func (h *WatchlistHandler) UpdateWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	watchlistID := chi.URLParam(r, "watchlistId")
	reviewID := chi.URLParam(r, "reviewId")
	if watchlistID == "" {
		utils.ResponseBadRequest(w, "Watchlist ID is required", nil)
		return
	}

	var req request.UpdateWatchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseUnprocessableEntity(w, "Validation failed", validationErrors)
		return
	}

	updated, err := h.service.UpdateWatchlistAndReview(r.Context(), userID, watchlistID, reviewID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update watchlist")
		return
	}

	utils.ResponseSuccess(w, "Review updated successfully.", updated)
}

// DeleteWatchlist handles DELETE /api/watchlist/{watchlistId}/{reviewId} (protected)
func (h *WatchlistHandler) DeleteWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	watchlistID := chi.URLParam(r, "watchlistId")
	reviewID := chi.URLParam(r, "reviewId")
	if watchlistID == "" {
		utils.ResponseBadRequest(w, "Watchlist ID is required", nil)
		return
	}

	if err := h.service.DeleteWatchlistAndReview(r.Context(), userID, watchlistID, reviewID); err != nil {
		h.handleServiceError(w, err, "delete watchlist")
		return
	}

	utils.ResponseSuccess(w, "Watchlist deleted successfully.", nil)
}

// handleServiceError maps service errors for watchlist operations
func (h *WatchlistHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "already"):
		h.log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnprocessableEntity(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
