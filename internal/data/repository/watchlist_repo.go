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

type WatchlistRepository interface {
	CreateWithReview(ctx context.Context, watchlist *entity.Watchlist, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Watchlist, error)
	FindByUserAndMovie(ctx context.Context, userID uuid.UUID, movieID int64) (*entity.Watchlist, error)
	FindAllByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Watchlist, error)
	UpdateMovieTitle(ctx context.Context, id uuid.UUID, movieTitle string) error
	DeleteWithReview(ctx context.Context, watchlist *entity.Watchlist) error
}

type watchlistRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWatchlistRepository(db database.PgxIface, log *zap.Logger) WatchlistRepository {
	return &watchlistRepository{
		db:  db,
		log: log.With(zap.String("repository", "watchlist")),
	}
}

// CreateWithReview inserts the watchlist entry and, when review is non-nil,
// its review inside one transaction. A mid-way failure leaves neither row.
func (r *watchlistRepository) CreateWithReview(ctx context.Context, watchlist *entity.Watchlist, review *entity.Review) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	watchlistQuery := `
		INSERT INTO watchlists (id, user_id, movie_id, movie_title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = tx.Exec(ctx, watchlistQuery,
		watchlist.ID,
		watchlist.UserID,
		watchlist.MovieID,
		watchlist.MovieTitle,
		watchlist.CreatedAt,
		watchlist.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create watchlist entry",
			zap.Error(err),
			zap.String("user_id", watchlist.UserID.String()),
			zap.Int64("movie_id", watchlist.MovieID),
		)
		return fmt.Errorf("create watchlist entry for movie %d by user %s: %w",
			watchlist.MovieID, watchlist.UserID.String(), err)
	}

	if review != nil {
		reviewQuery := `
			INSERT INTO reviews (id, user_id, movie_id, movie_title, review_title, review_body, rating, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`

		_, err = tx.Exec(ctx, reviewQuery,
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
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit watchlist transaction", zap.Error(err))
		return fmt.Errorf("commit watchlist transaction: %w", err)
	}

	return nil
}

func (r *watchlistRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Watchlist, error) {
	query := `
		SELECT id, user_id, movie_id, movie_title, created_at, updated_at
		FROM watchlists
		WHERE id = $1
	`

	var watchlist entity.Watchlist
	err := r.db.QueryRow(ctx, query, id).Scan(
		&watchlist.ID,
		&watchlist.UserID,
		&watchlist.MovieID,
		&watchlist.MovieTitle,
		&watchlist.CreatedAt,
		&watchlist.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find watchlist entry by ID",
			zap.Error(err),
			zap.String("watchlist_id", id.String()),
		)
		return nil, fmt.Errorf("find watchlist entry by ID %s: %w", id.String(), err)
	}

	return &watchlist, nil
}

func (r *watchlistRepository) FindByUserAndMovie(ctx context.Context, userID uuid.UUID, movieID int64) (*entity.Watchlist, error) {
	query := `
		SELECT id, user_id, movie_id, movie_title, created_at, updated_at
		FROM watchlists
		WHERE user_id = $1 AND movie_id = $2
		LIMIT 1
	`

	var watchlist entity.Watchlist
	err := r.db.QueryRow(ctx, query, userID, movieID).Scan(
		&watchlist.ID,
		&watchlist.UserID,
		&watchlist.MovieID,
		&watchlist.MovieTitle,
		&watchlist.CreatedAt,
		&watchlist.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find watchlist entry by user and movie",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("find watchlist entry by user %s and movie %d: %w",
			userID.String(), movieID, err)
	}

	return &watchlist, nil
}

// FindAllByUserID returns the user's entire watchlist, newest first. Filtering
// and pagination happen in the service over the full set so the reviewed
// counts stay filter-invariant.
func (r *watchlistRepository) FindAllByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Watchlist, error) {
	query := `
		SELECT id, user_id, movie_id, movie_title, created_at, updated_at
		FROM watchlists
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find watchlist entries by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find watchlist entries by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var watchlists []*entity.Watchlist
	for rows.Next() {
		var watchlist entity.Watchlist
		err := rows.Scan(
			&watchlist.ID,
			&watchlist.UserID,
			&watchlist.MovieID,
			&watchlist.MovieTitle,
			&watchlist.CreatedAt,
			&watchlist.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan watchlist row", zap.Error(err))
			return nil, fmt.Errorf("scan watchlist row: %w", err)
		}
		watchlists = append(watchlists, &watchlist)
	}

	return watchlists, nil
}

func (r *watchlistRepository) UpdateMovieTitle(ctx context.Context, id uuid.UUID, movieTitle string) error {
	query := `
		UPDATE watchlists
		SET movie_title = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, movieTitle)
	if err != nil {
		r.log.Error("Failed to update watchlist movie title",
			zap.Error(err),
			zap.String("watchlist_id", id.String()),
		)
		return fmt.Errorf("update watchlist %s movie title: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("watchlist %s not found", id.String())
	}

	return nil
}

// DeleteWithReview removes the entry and any review for the same
// (user_id, movie_id) pair in one transaction.
func (r *watchlistRepository) DeleteWithReview(ctx context.Context, watchlist *entity.Watchlist) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM reviews WHERE user_id = $1 AND movie_id = $2`,
		watchlist.UserID, watchlist.MovieID)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("user_id", watchlist.UserID.String()),
			zap.Int64("movie_id", watchlist.MovieID),
		)
		return fmt.Errorf("delete review for movie %d by user %s: %w",
			watchlist.MovieID, watchlist.UserID.String(), err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM watchlists WHERE id = $1`, watchlist.ID)
	if err != nil {
		r.log.Error("Failed to delete watchlist entry",
			zap.Error(err),
			zap.String("watchlist_id", watchlist.ID.String()),
		)
		return fmt.Errorf("delete watchlist entry %s: %w", watchlist.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("watchlist %s not found", watchlist.ID.String())
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit delete transaction", zap.Error(err))
		return fmt.Errorf("commit delete transaction: %w", err)
	}

	r.log.Info("Watchlist entry deleted",
		zap.String("watchlist_id", watchlist.ID.String()),
		zap.Int64("movie_id", watchlist.MovieID),
	)
	return nil
}
