package adaptor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"movie-watchlist/internal/dto/request"
	"movie-watchlist/internal/dto/response"
	"movie-watchlist/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ==================== MOCK SERVICE ====================

type mockWatchlistService struct {
	mock.Mock
}

func (m *mockWatchlistService) FetchWatchlists(ctx context.Context, userID uuid.UUID, filter string, page int, path, rawQuery string) (*response.WatchlistListResult, error) {
	args := m.Called(ctx, userID, filter, page, path, rawQuery)
	if r := args.Get(0); r != nil {
		return r.(*response.WatchlistListResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWatchlistService) AddToWatchlist(ctx context.Context, userID uuid.UUID, req *request.AddWatchlistRequest) (*response.WatchlistCreatedResponse, string, error) {
	args := m.Called(ctx, userID, req)
	if r := args.Get(0); r != nil {
		return r.(*response.WatchlistCreatedResponse), args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

func (m *mockWatchlistService) UpdateWatchlistAndReview(ctx context.Context, userID uuid.UUID, watchlistID, reviewID string, req *request.UpdateWatchlistRequest) (*response.WatchlistUpdateResponse, error) {
	args := m.Called(ctx, userID, watchlistID, reviewID, req)
	if r := args.Get(0); r != nil {
		return r.(*response.WatchlistUpdateResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWatchlistService) DeleteWatchlistAndReview(ctx context.Context, userID uuid.UUID, watchlistID, reviewID string) error {
	args := m.Called(ctx, userID, watchlistID, reviewID)
	return args.Error(0)
}

// ==================== HELPERS ====================

// newWatchlistRouter mounts the handler on the protected routes with a
// middleware that injects the given user into the request context, standing in
// for session auth.
func newWatchlistRouter(service *mockWatchlistService, userID uuid.UUID) *chi.Mux {
	handler := NewWatchlistHandler(service, zap.NewNop())

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(utils.SetUserContext(req.Context(), userID)))
			})
		})
		r.Get("/api/watchlist", handler.GetWatchlist)
		r.Post("/api/watchlist", handler.AddToWatchlist)
		r.Put("/api/watchlist/{watchlistId}/{reviewId}", handler.UpdateWatchlist)
		r.Delete("/api/watchlist/{watchlistId}/{reviewId}", handler.DeleteWatchlist)
	})
	return r
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// ==================== GET ====================

func TestGetWatchlistEnvelope(t *testing.T) {
	userID := uuid.New()
	service := new(mockWatchlistService)
	items := []response.WatchlistItemResponse{
		{ID: uuid.New().String(), MovieID: 1, MovieTitle: "Movie 1"},
	}
	service.On("FetchWatchlists", mock.Anything, userID, "all", 1, "/api/watchlist", "").
		Return(&response.WatchlistListResult{
			Paginated:        response.NewPaginatedResponse(items, 1, 10, 1, "/api/watchlist", ""),
			ReviewedCount:    1,
			NotReviewedCount: 0,
		}, nil)

	router := newWatchlistRouter(service, userID)
	req := httptest.NewRequest(http.MethodGet, "/api/watchlist", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Watchlist fetched successfully.", body["message"])
	assert.Equal(t, float64(1), body["reviewed_count"])
	assert.Equal(t, float64(0), body["not_reviewed_count"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, data["items"], 1)
	service.AssertExpectations(t)
}

func TestGetWatchlistPassesFilterAndPage(t *testing.T) {
	userID := uuid.New()
	service := new(mockWatchlistService)
	service.On("FetchWatchlists", mock.Anything, userID, "reviewed", 3, "/api/watchlist", "filter=reviewed&page=3").
		Return(&response.WatchlistListResult{
			Paginated: response.NewPaginatedResponse[response.WatchlistItemResponse](nil, 3, 10, 0, "/api/watchlist", "filter=reviewed&page=3"),
		}, nil)

	router := newWatchlistRouter(service, userID)
	req := httptest.NewRequest(http.MethodGet, "/api/watchlist?filter=reviewed&page=3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	service.AssertExpectations(t)
}

func TestGetWatchlistRequiresAuth(t *testing.T) {
	handler := NewWatchlistHandler(new(mockWatchlistService), zap.NewNop())

	r := chi.NewRouter()
	r.Get("/api/watchlist", handler.GetWatchlist)

	req := httptest.NewRequest(http.MethodGet, "/api/watchlist", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
}

// ==================== POST ====================

func TestAddToWatchlistCreated(t *testing.T) {
	userID := uuid.New()
	service := new(mockWatchlistService)
	service.On("AddToWatchlist", mock.Anything, userID, mock.MatchedBy(func(req *request.AddWatchlistRequest) bool {
		return req.MovieID == 42 && req.MovieTitle == "Inception"
	})).Return(&response.WatchlistCreatedResponse{
		WatchlistID: uuid.New().String(),
		MovieID:     42,
		MovieTitle:  "Inception",
	}, "Movie added to watchlist with review.", nil)

	router := newWatchlistRouter(service, userID)
	payload := `{"movie_id": 42, "movie_title": "Inception", "rating": 5}`
	req := httptest.NewRequest(http.MethodPost, "/api/watchlist", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Movie added to watchlist with review.", body["message"])
	service.AssertExpectations(t)
}

func TestAddToWatchlistMalformedJSON(t *testing.T) {
	userID := uuid.New()
	service := new(mockWatchlistService)

	router := newWatchlistRouter(service, userID)
	req := httptest.NewRequest(http.MethodPost, "/api/watchlist", strings.NewReader(`{"movie_id":`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	service.AssertNotCalled(t, "AddToWatchlist", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddToWatchlistValidationFailure(t *testing.T) {
	userID := uuid.New()
	service := new(mockWatchlistService)

	router := newWatchlistRouter(service, userID)
	// rating 0 is an explicit out-of-range value, not an omitted field
	payload := `{"movie_id": 42, "movie_title": "Inception", "rating": 0}`
	req := httptest.NewRequest(http.MethodPost, "/api/watchlist", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
	assert.NotNil(t, body["errors"])
	service.AssertNotCalled(t, "AddToWatchlist", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddToWatchlistConflict(t *testing.T) {
	userID := uuid.New()
	service := new(mockWatchlistService)
	service.On("AddToWatchlist", mock.Anything, userID, mock.Anything).
		Return(nil, "", fmt.Errorf("This movie is already in your watchlist."))

	router := newWatchlistRouter(service, userID)
	payload := `{"movie_id": 42, "movie_title": "Inception"}`
	req := httptest.NewRequest(http.MethodPost, "/api/watchlist", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "This movie is already in your watchlist.", body["message"])
}

// ==================== PUT ====================

func TestUpdateWatchlistSuccess(t *testing.T) {
	userID := uuid.New()
	watchlistID := uuid.New().String()
	reviewID := uuid.New().String()

	service := new(mockWatchlistService)
	service.On("UpdateWatchlistAndReview", mock.Anything, userID, watchlistID, reviewID, mock.Anything).
		Return(&response.WatchlistUpdateResponse{}, nil)

	router := newWatchlistRouter(service, userID)
	req := httptest.NewRequest(http.MethodPut, "/api/watchlist/"+watchlistID+"/"+reviewID, strings.NewReader(`{"rating": 3}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Review updated successfully.", body["message"])
	service.AssertExpectations(t)
}

func TestUpdateWatchlistNotFound(t *testing.T) {
	userID := uuid.New()
	watchlistID := uuid.New().String()
	reviewID := uuid.New().String()

	service := new(mockWatchlistService)
	service.On("UpdateWatchlistAndReview", mock.Anything, userID, watchlistID, reviewID, mock.Anything).
		Return(nil, fmt.Errorf("Watchlist not found."))

	router := newWatchlistRouter(service, userID)
	req := httptest.NewRequest(http.MethodPut, "/api/watchlist/"+watchlistID+"/"+reviewID, strings.NewReader(`{"rating": 3}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Watchlist not found.", body["message"])
}

// ==================== DELETE ====================

func TestDeleteWatchlistSuccess(t *testing.T) {
	userID := uuid.New()
	watchlistID := uuid.New().String()
	reviewID := uuid.New().String()

	service := new(mockWatchlistService)
	service.On("DeleteWatchlistAndReview", mock.Anything, userID, watchlistID, reviewID).Return(nil)

	router := newWatchlistRouter(service, userID)
	req := httptest.NewRequest(http.MethodDelete, "/api/watchlist/"+watchlistID+"/"+reviewID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Watchlist deleted successfully.", body["message"])
	service.AssertExpectations(t)
}

func TestDeleteWatchlistNotFound(t *testing.T) {
	userID := uuid.New()
	watchlistID := uuid.New().String()
	reviewID := uuid.New().String()

	service := new(mockWatchlistService)
	service.On("DeleteWatchlistAndReview", mock.Anything, userID, watchlistID, reviewID).
		Return(fmt.Errorf("Watchlist not found."))

	router := newWatchlistRouter(service, userID)
	req := httptest.NewRequest(http.MethodDelete, "/api/watchlist/"+watchlistID+"/"+reviewID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
