package usecase

import (
	"context"
	"fmt"

	"movie-watchlist/internal/data/repository"
	"movie-watchlist/internal/dto/response"

	"go.uber.org/zap"
)

// movieReviewLimit caps the public review feed per movie.
const movieReviewLimit = 6

type ReviewService interface {
	GetMovieReviews(ctx context.Context, movieID int64) ([]response.ReviewResponse, error)
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

// GetMovieReviews returns up to six most-recent reviews for a movie across
// all users, each with the reviewer's name attached.
func (s *reviewService) GetMovieReviews(ctx context.Context, movieID int64) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindByMovieID(ctx, movieID, movieReviewLimit)
	if err != nil {
		s.log.Error("Failed to get movie reviews",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("get movie reviews: %w", err)
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		user, _ := s.repo.User.FindByID(ctx, review.UserID)
		reviewer := ""
		if user != nil {
			reviewer = user.Username
		}

		reviewResponses[i] = response.ReviewToResponse(review, reviewer)
	}

	s.log.Info("Movie reviews retrieved",
		zap.Int64("movie_id", movieID),
		zap.Int("count", len(reviews)),
	)

	return reviewResponses, nil
}
