package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-watchlist/internal/data/entity"
	"movie-watchlist/internal/data/repository"
	"movie-watchlist/internal/dto/request"
	"movie-watchlist/internal/dto/response"
	"movie-watchlist/pkg/database"
	"movie-watchlist/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const watchlistPerPage = 10

type WatchlistService interface {
	FetchWatchlists(ctx context.Context, userID uuid.UUID, filter string, page int, path, rawQuery string) (*response.WatchlistListResult, error)
	AddToWatchlist(ctx context.Context, userID uuid.UUID, req *request.AddWatchlistRequest) (*response.WatchlistCreatedResponse, string, error)
	UpdateWatchlistAndReview(ctx context.Context, userID uuid.UUID, watchlistID, reviewID string, req *request.UpdateWatchlistRequest) (*response.WatchlistUpdateResponse, error)
	DeleteWatchlistAndReview(ctx context.Context, userID uuid.UUID, watchlistID, reviewID string) error
}

type watchlistService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewWatchlistService(repo *repository.Repository, log *zap.Logger) WatchlistService {
	return &watchlistService{
		repo: repo,
		log:  log.With(zap.String("service", "watchlist")),
	}
}

// FetchWatchlists loads the user's full watchlist newest-first, joins each
// entry with the user's review for the same movie, and paginates the filtered
// sequence in memory. The reviewed counts always describe the full set, never
// the filtered page.
func (s *watchlistService) FetchWatchlists(ctx context.Context, userID uuid.UUID, filter string, page int, path, rawQuery string) (*response.WatchlistListResult, error) {
	if page < 1 {
		page = 1
	}

	watchlists, err := s.repo.Watchlist.FindAllByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to fetch watchlists",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("fetch watchlists: %w", err)
	}

	movieIDs := make([]int64, len(watchlists))
	for i, watchlist := range watchlists {
		movieIDs[i] = watchlist.MovieID
	}

	reviews, err := s.repo.Review.FindByUserAndMovieIDs(ctx, userID, movieIDs)
	if err != nil {
		s.log.Error("Failed to fetch reviews for watchlist",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("fetch watchlist reviews: %w", err)
	}

	reviewedCount, notReviewedCount := countReviewed(watchlists, reviews)

	// Filter, preserving newest-first order. Unknown filter values behave
	// like "all".
	var filtered []*entity.Watchlist
	for _, watchlist := range watchlists {
		_, hasReview := reviews[watchlist.MovieID]
		switch filter {
		case request.FilterReviewed:
			if hasReview {
				filtered = append(filtered, watchlist)
			}
		case request.FilterNotReviewed:
			if !hasReview {
				filtered = append(filtered, watchlist)
			}
		default:
			filtered = append(filtered, watchlist)
		}
	}

	total := int64(len(filtered))

	// Slice out the requested page. A page past the end yields an empty
	// item list, not an error.
	offset := utils.CalculateOffset(page, watchlistPerPage)
	end := offset + watchlistPerPage
	if offset > len(filtered) {
		offset = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	items := make([]response.WatchlistItemResponse, 0, end-offset)
	for _, watchlist := range filtered[offset:end] {
		items = append(items, response.WatchlistToResponse(watchlist, reviews[watchlist.MovieID]))
	}

	s.log.Info("Watchlist fetched",
		zap.String("user_id", userID.String()),
		zap.String("filter", filter),
		zap.Int("page", page),
		zap.Int("count", len(items)),
		zap.Int64("total", total),
	)

	return &response.WatchlistListResult{
		Paginated:        response.NewPaginatedResponse(items, page, watchlistPerPage, total, path, rawQuery),
		ReviewedCount:    reviewedCount,
		NotReviewedCount: notReviewedCount,
	}, nil
}

// countReviewed computes the reviewed/not-reviewed split over the full
// unfiltered watchlist.
func countReviewed(watchlists []*entity.Watchlist, reviews map[int64]*entity.Review) (int, int) {
	reviewed := 0
	for _, watchlist := range watchlists {
		if _, ok := reviews[watchlist.MovieID]; ok {
			reviewed++
		}
	}
	return reviewed, len(watchlists) - reviewed
}

// AddToWatchlist creates the entry and, when any review field is supplied,
// the review, in a single transaction. Duplicates are rejected up front; a
// concurrent insert that slips past the pre-check trips the (user_id,
// movie_id) unique constraint and is reported the same way.
func (s *watchlistService) AddToWatchlist(ctx context.Context, userID uuid.UUID, req *request.AddWatchlistRequest) (*response.WatchlistCreatedResponse, string, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add to watchlist validation failed", zap.Any("errors", errs))
		return nil, "", fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existingWatchlist, err := s.repo.Watchlist.FindByUserAndMovie(ctx, userID, req.MovieID)
	if err != nil {
		s.log.Error("Failed to check existing watchlist entry", zap.Error(err))
		return nil, "", fmt.Errorf("check existing watchlist entry: %w", err)
	}
	if existingWatchlist != nil {
		return nil, "", fmt.Errorf("This movie is already in your watchlist.")
	}

	existingReview, err := s.repo.Review.FindByUserAndMovie(ctx, userID, req.MovieID)
	if err != nil {
		s.log.Error("Failed to check existing review", zap.Error(err))
		return nil, "", fmt.Errorf("check existing review: %w", err)
	}
	if existingReview != nil {
		return nil, "", fmt.Errorf("You have already reviewed this movie.")
	}

	now := time.Now()
	watchlist := &entity.Watchlist{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:     userID,
		MovieID:    req.MovieID,
		MovieTitle: req.MovieTitle,
	}

	var review *entity.Review
	message := "Movie added to watchlist."
	if req.HasReview() {
		review = &entity.Review{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID:      userID,
			MovieID:     req.MovieID,
			MovieTitle:  req.MovieTitle,
			ReviewTitle: req.ReviewTitle,
			ReviewBody:  req.ReviewBody,
			Rating:      req.Rating,
		}
		message = "Movie added to watchlist with review."
	}

	if err := s.repo.Watchlist.CreateWithReview(ctx, watchlist, review); err != nil {
		if database.IsUniqueViolation(err) {
			s.log.Warn("Duplicate watchlist insert lost the race",
				zap.String("user_id", userID.String()),
				zap.Int64("movie_id", req.MovieID),
			)
			return nil, "", fmt.Errorf("This movie is already in your watchlist.")
		}
		s.log.Error("Failed to add movie to watchlist",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int64("movie_id", req.MovieID),
		)
		return nil, "", fmt.Errorf("add movie to watchlist: %w", err)
	}

	s.log.Info("Movie added to watchlist",
		zap.String("watchlist_id", watchlist.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int64("movie_id", req.MovieID),
		zap.Bool("with_review", review != nil),
	)

	return &response.WatchlistCreatedResponse{
		WatchlistID: watchlist.ID.String(),
		MovieID:     watchlist.MovieID,
		MovieTitle:  watchlist.MovieTitle,
	}, message, nil
}

// UpdateWatchlistAndReview patches the watchlist entry and reconciles the
// review. The reviewID is advisory: when it resolves to the caller's review
// the supplied fields are overlaid onto it, otherwise a new review is created
// for the entry's (user, movie) with only the supplied fields set.
func (s *watchlistService) UpdateWatchlistAndReview(ctx context.Context, userID uuid.UUID, watchlistID, reviewID string, req *request.UpdateWatchlistRequest) (*response.WatchlistUpdateResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update watchlist validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	watchlist, err := s.findUserWatchlist(ctx, userID, watchlistID)
	if err != nil {
		return nil, err
	}

	if req.MovieTitle != nil && *req.MovieTitle != "" {
		watchlist.MovieTitle = *req.MovieTitle
		if err := s.repo.Watchlist.UpdateMovieTitle(ctx, watchlist.ID, watchlist.MovieTitle); err != nil {
			s.log.Error("Failed to update movie title",
				zap.Error(err),
				zap.String("watchlist_id", watchlistID),
			)
			return nil, fmt.Errorf("update movie title: %w", err)
		}
	}

	review, err := s.resolveReview(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	if review != nil {
		// Partial update: only supplied fields replace prior values.
		if req.MovieTitle != nil && *req.MovieTitle != "" {
			review.MovieTitle = *req.MovieTitle
		}
		if req.ReviewTitle != nil {
			review.ReviewTitle = req.ReviewTitle
		}
		if req.ReviewBody != nil {
			review.ReviewBody = req.ReviewBody
		}
		if req.Rating != nil {
			review.Rating = req.Rating
		}

		if err := s.repo.Review.Update(ctx, review); err != nil {
			s.log.Error("Failed to update review",
				zap.Error(err),
				zap.String("review_id", review.ID.String()),
			)
			return nil, fmt.Errorf("update review: %w", err)
		}
	} else {
		now := time.Now()
		review = &entity.Review{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID:      watchlist.UserID,
			MovieID:     watchlist.MovieID,
			MovieTitle:  watchlist.MovieTitle,
			ReviewTitle: req.ReviewTitle,
			ReviewBody:  req.ReviewBody,
			Rating:      req.Rating,
		}

		if err := s.repo.Review.Create(ctx, review); err != nil {
			if database.IsUniqueViolation(err) {
				return nil, fmt.Errorf("You have already reviewed this movie.")
			}
			s.log.Error("Failed to create review on update",
				zap.Error(err),
				zap.String("watchlist_id", watchlistID),
			)
			return nil, fmt.Errorf("create review: %w", err)
		}
	}

	s.log.Info("Watchlist and review updated",
		zap.String("watchlist_id", watchlistID),
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", userID.String()),
	)

	return &response.WatchlistUpdateResponse{
		Watchlist: response.WatchlistToResponse(watchlist, review),
		Review:    response.ReviewToResponse(review, ""),
	}, nil
}

// DeleteWatchlistAndReview removes the entry and its associated review. The
// entry must resolve for the calling user; the path's reviewID is advisory
// and never causes its own not-found, the review actually deleted is the one
// matching the entry's (user, movie).
func (s *watchlistService) DeleteWatchlistAndReview(ctx context.Context, userID uuid.UUID, watchlistID, reviewID string) error {
	watchlist, err := s.findUserWatchlist(ctx, userID, watchlistID)
	if err != nil {
		return err
	}

	if err := s.repo.Watchlist.DeleteWithReview(ctx, watchlist); err != nil {
		s.log.Error("Failed to delete watchlist entry",
			zap.Error(err),
			zap.String("watchlist_id", watchlistID),
		)
		return fmt.Errorf("delete watchlist entry: %w", err)
	}

	s.log.Info("Watchlist entry and review deleted",
		zap.String("watchlist_id", watchlistID),
		zap.String("user_id", userID.String()),
	)

	return nil
}

// ==================== HELPER METHODS ====================

// findUserWatchlist resolves a watchlist id for the given user. Entries owned
// by someone else are reported as not found.
func (s *watchlistService) findUserWatchlist(ctx context.Context, userID uuid.UUID, watchlistID string) (*entity.Watchlist, error) {
	watchlistUUID, err := uuid.Parse(watchlistID)
	if err != nil {
		return nil, fmt.Errorf("Watchlist not found.")
	}

	watchlist, err := s.repo.Watchlist.FindByID(ctx, watchlistUUID)
	if err != nil {
		s.log.Error("Failed to find watchlist entry",
			zap.Error(err),
			zap.String("watchlist_id", watchlistID),
		)
		return nil, fmt.Errorf("find watchlist entry: %w", err)
	}

	if watchlist == nil || watchlist.UserID != userID {
		return nil, fmt.Errorf("Watchlist not found.")
	}

	return watchlist, nil
}

// resolveReview treats the advisory review id as resolving only when it
// parses, exists, and belongs to the caller. Anything else means "no review",
// which triggers the create path.
func (s *watchlistService) resolveReview(ctx context.Context, userID uuid.UUID, reviewID string) (*entity.Review, error) {
	reviewUUID, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, nil
	}

	review, err := s.repo.Review.FindByID(ctx, reviewUUID)
	if err != nil {
		s.log.Error("Failed to find review",
			zap.Error(err),
			zap.String("review_id", reviewID),
		)
		return nil, fmt.Errorf("find review: %w", err)
	}

	if review == nil || review.UserID != userID {
		return nil, nil
	}

	return review, nil
}
