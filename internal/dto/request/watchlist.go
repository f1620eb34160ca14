package request

const (
	FilterAll         = "all"
	FilterReviewed    = "reviewed"
	FilterNotReviewed = "not_reviewed"
)

type AddWatchlistRequest struct {
	MovieID     int64   `json:"movie_id" validate:"required,gt=0"`
	MovieTitle  string  `json:"movie_title" validate:"required,max=255"`
	ReviewTitle *string `json:"review_title,omitempty" validate:"omitempty,max=255"`
	ReviewBody  *string `json:"review_body,omitempty"`
	Rating      *int    `json:"rating,omitempty" validate:"omitnil,min=1,max=5"`
}

// HasReview reports whether any review field was supplied, which decides
// whether a review row is created alongside the watchlist entry.
func (r AddWatchlistRequest) HasReview() bool {
	if r.ReviewTitle != nil && *r.ReviewTitle != "" {
		return true
	}
	if r.ReviewBody != nil && *r.ReviewBody != "" {
		return true
	}
	return r.Rating != nil
}

// UpdateWatchlistRequest is a partial update: absent fields keep their prior
// value.
type UpdateWatchlistRequest struct {
	MovieTitle  *string `json:"movie_title,omitempty" validate:"omitempty,max=255"`
	ReviewTitle *string `json:"review_title,omitempty" validate:"omitempty,max=255"`
	ReviewBody  *string `json:"review_body,omitempty"`
	Rating      *int    `json:"rating,omitempty" validate:"omitnil,min=1,max=5"`
}
