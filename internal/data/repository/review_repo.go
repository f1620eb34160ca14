package repository

import (
	"context"
	"fmt"

	"movie-watchlist/internal/data/entity"
	"movie-watchlist/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByUserAndMovie(ctx context.Context, userID uuid.UUID, movieID int64) (*entity.Review, error)
	FindByUserAndMovieIDs(ctx context.Context, userID uuid.UUID, movieIDs []int64) (map[int64]*entity.Review, error)
	FindByMovieID(ctx context.Context, movieID int64, limit int) ([]*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, movie_id, movie_title, review_title, review_body, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.UserID,
		review.MovieID,
		review.MovieTitle,
		review.ReviewTitle,
		review.ReviewBody,
		review.Rating,
		review.CreatedAt,
		review.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", review.UserID.String()),
			zap.Int64("movie_id", review.MovieID),
		)
		return fmt.Errorf("create review for movie %d by user %s: %w",
			review.MovieID, review.UserID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, user_id, movie_id, movie_title, review_title, review_body, rating, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.UserID,
		&review.MovieID,
		&review.MovieTitle,
		&review.ReviewTitle,
		&review.ReviewBody,
		&review.Rating,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return &review, nil
}

func (r *reviewRepository) FindByUserAndMovie(ctx context.Context, userID uuid.UUID, movieID int64) (*entity.Review, error) {
	query := `
		SELECT id, user_id, movie_id, movie_title, review_title, review_body, rating, created_at, updated_at
		FROM reviews
		WHERE user_id = $1 AND movie_id = $2
		LIMIT 1
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, userID, movieID).Scan(
		&review.ID,
		&review.UserID,
		&review.MovieID,
		&review.MovieTitle,
		&review.ReviewTitle,
		&review.ReviewBody,
		&review.Rating,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by user and movie",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("find review by user %s and movie %d: %w",
			userID.String(), movieID, err)
	}

	return &review, nil
}

// FindByUserAndMovieIDs loads the user's reviews for the given movie ids,
// keyed by movie id. This is the reconciliation join: a watchlist entry is
// "reviewed" when its movie id has a key in the returned map.
func (r *reviewRepository) FindByUserAndMovieIDs(ctx context.Context, userID uuid.UUID, movieIDs []int64) (map[int64]*entity.Review, error) {
	reviews := make(map[int64]*entity.Review)
	if len(movieIDs) == 0 {
		return reviews, nil
	}

	query := `
		SELECT id, user_id, movie_id, movie_title, review_title, review_body, rating, created_at, updated_at
		FROM reviews
		WHERE user_id = $1 AND movie_id = ANY($2)
	`

	rows, err := r.db.Query(ctx, query, userID, movieIDs)
	if err != nil {
		r.log.Error("Failed to find reviews by user and movie IDs",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("movie_count", len(movieIDs)),
		)
		return nil, fmt.Errorf("find reviews by user %s and movie IDs: %w", userID.String(), err)
	}
	defer rows.Close()

	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.MovieID,
			&review.MovieTitle,
			&review.ReviewTitle,
			&review.ReviewBody,
			&review.Rating,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews[review.MovieID] = &review
	}

	return reviews, nil
}

func (r *reviewRepository) FindByMovieID(ctx context.Context, movieID int64, limit int) ([]*entity.Review, error) {
	query := `
		SELECT id, user_id, movie_id, movie_title, review_title, review_body, rating, created_at, updated_at
		FROM reviews
		WHERE movie_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, movieID, limit)
	if err != nil {
		r.log.Error("Failed to find reviews by movie ID",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("find reviews by movie ID %d: %w", movieID, err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.MovieID,
			&review.MovieTitle,
			&review.ReviewTitle,
			&review.ReviewBody,
			&review.Rating,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET movie_title = $2, review_title = $3, review_body = $4, rating = $5, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		review.ID,
		review.MovieTitle,
		review.ReviewTitle,
		review.ReviewBody,
		review.Rating,
	)

	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
		)
		return fmt.Errorf("update review %s: %w", review.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", review.ID.String())
	}

	return nil
}
