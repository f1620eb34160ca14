package response

import (
	"time"

	"movie-watchlist/internal/data/entity"
)

type ReviewResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Reviewer    string    `json:"reviewer,omitempty"`
	MovieID     int64     `json:"movie_id"`
	MovieTitle  string    `json:"movie_title"`
	ReviewTitle *string   `json:"review_title"`
	ReviewBody  *string   `json:"review_body"`
	Rating      *int      `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
}

// Helper converter
func ReviewToResponse(review *entity.Review, reviewer string) ReviewResponse {
	return ReviewResponse{
		ID:          review.ID.String(),
		UserID:      review.UserID.String(),
		Reviewer:    reviewer,
		MovieID:     review.MovieID,
		MovieTitle:  review.MovieTitle,
		ReviewTitle: review.ReviewTitle,
		ReviewBody:  review.ReviewBody,
		Rating:      review.Rating,
		CreatedAt:   review.CreatedAt,
	}
}
