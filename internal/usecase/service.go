package usecase

import (
	"movie-watchlist/internal/data/repository"
	"movie-watchlist/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	Watchlist WatchlistService
	Review    ReviewService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:      NewAuthService(repo, config, log),
		Watchlist: NewWatchlistService(repo, log),
		Review:    NewReviewService(repo, log),
	}
}
