package adaptor

import (
	"movie-watchlist/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	Watchlist *WatchlistHandler
	Review    *ReviewHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		Watchlist: NewWatchlistHandler(service.Watchlist, log),
		Review:    NewReviewHandler(service.Review, log),
	}
}
