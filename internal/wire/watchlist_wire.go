package wire

import (
	"movie-watchlist/internal/adaptor"
	"movie-watchlist/internal/data/repository"
	"movie-watchlist/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireWatchlist(
	r chi.Router,
	watchlistHandler *adaptor.WatchlistHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// All watchlist routes require authentication
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// GET /api/watchlist?filter=all|reviewed|not_reviewed&page=N
		r.Get("/api/watchlist", watchlistHandler.GetWatchlist)

		// POST /api/watchlist - Add movie, optionally with review
		r.Post("/api/watchlist", watchlistHandler.AddToWatchlist)

		// PUT /api/watchlist/{watchlistId}/{reviewId} - Partial update, review id advisory
		r.Put("/api/watchlist/{watchlistId}/{reviewId}", watchlistHandler.UpdateWatchlist)

		// DELETE /api/watchlist/{watchlistId}/{reviewId} - Remove entry and review
		r.Delete("/api/watchlist/{watchlistId}/{reviewId}", watchlistHandler.DeleteWatchlist)
	})
}
