package wire

import (
	"movie-watchlist/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
) {
	// GET /api/reviews/{movieId} - View movie reviews (public)
	r.Get("/api/reviews/{movieId}", reviewHandler.GetMovieReviews)
}
