package entity

import (
	"github.com/google/uuid"
)

// Review is keyed by (user_id, movie_id) like Watchlist; the two tables join
// logically on that pair, not through a foreign key. All review fields are
// optional. Rating, when present, is 1-5.
type Review struct {
	BaseNoDelete
	UserID      uuid.UUID `db:"user_id"`
	MovieID     int64     `db:"movie_id"`
	MovieTitle  string    `db:"movie_title"`
	ReviewTitle *string   `db:"review_title"`
	ReviewBody  *string   `db:"review_body"`
	Rating      *int      `db:"rating"`
}
