package entity

import (
	"github.com/google/uuid"
)

// Watchlist is one user's intent to watch a movie. MovieID is the external
// movie identifier, MovieTitle a denormalized display name. At most one row
// per (user_id, movie_id), enforced by a unique constraint.
type Watchlist struct {
	BaseNoDelete
	UserID     uuid.UUID `db:"user_id"`
	MovieID    int64     `db:"movie_id"`
	MovieTitle string    `db:"movie_title"`
}
