package repository

import (
	"movie-watchlist/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User      UserRepository
	Session   SessionRepository
	Watchlist WatchlistRepository
	Review    ReviewRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:      NewUserRepository(db, log),
		Session:   NewSessionRepository(db, log),
		Watchlist: NewWatchlistRepository(db, log),
		Review:    NewReviewRepository(db, log),
	}
}
