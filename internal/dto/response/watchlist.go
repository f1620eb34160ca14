package response

import (
	"time"

	"movie-watchlist/internal/data/entity"
)

// ReviewSummary is the review shape attached inline to a watchlist item.
type ReviewSummary struct {
	ReviewID    string  `json:"review_id"`
	ReviewTitle *string `json:"review_title"`
	ReviewBody  *string `json:"review_body"`
	Rating      *int    `json:"rating"`
}

type WatchlistItemResponse struct {
	ID         string         `json:"id"`
	MovieID    int64          `json:"movie_id"`
	MovieTitle string         `json:"movie_title"`
	CreatedAt  time.Time      `json:"created_at"`
	Review     *ReviewSummary `json:"review"`
}

// WatchlistListResult carries the page plus the filter-invariant counts
// computed over the user's full watchlist.
type WatchlistListResult struct {
	Paginated        *PaginatedResponse[WatchlistItemResponse]
	ReviewedCount    int
	NotReviewedCount int
}

type WatchlistCreatedResponse struct {
	WatchlistID string `json:"watchlist_id"`
	MovieID     int64  `json:"movie_id"`
	MovieTitle  string `json:"movie_title"`
}

type WatchlistUpdateResponse struct {
	Watchlist WatchlistItemResponse `json:"watchlist"`
	Review    ReviewResponse        `json:"review"`
}

// Helper converters

func WatchlistToResponse(watchlist *entity.Watchlist, review *entity.Review) WatchlistItemResponse {
	resp := WatchlistItemResponse{
		ID:         watchlist.ID.String(),
		MovieID:    watchlist.MovieID,
		MovieTitle: watchlist.MovieTitle,
		CreatedAt:  watchlist.CreatedAt,
	}

	if review != nil {
		resp.Review = &ReviewSummary{
			ReviewID:    review.ID.String(),
			ReviewTitle: review.ReviewTitle,
			ReviewBody:  review.ReviewBody,
			Rating:      review.Rating,
		}
	}

	return resp
}
