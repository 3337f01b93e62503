package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"edufleex-go/internal/api/dto"
	"edufleex-go/internal/api/handler"
	"edufleex-go/internal/api/middleware"
	"edufleex-go/internal/api/response"
	"edufleex-go/internal/api/router"
	"edufleex-go/internal/config"
	"edufleex-go/internal/model"
	"edufleex-go/internal/repository"
	"edufleex-go/internal/service"
	"edufleex-go/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := dto.RegisterValidators(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newServer(t *testing.T, favoriteWritesPerMinute int) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := testutil.NewDB(t)
	videoRepo := repository.NewVideoRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	catalogService := service.NewCatalogService(videoRepo, categoryRepo, nil, time.Minute)
	videoService := service.NewVideoService(videoRepo, categoryRepo, nil, nil, nil)
	favoriteService := service.NewFavoriteService(favoriteRepo, videoRepo)
	searchService := service.NewSearchService(videoRepo, nil)
	browseService := service.NewBrowseService(catalogService, videoService, favoriteService, config.BrowseConfig{
		DefaultUserID:          "default-user",
		PreferredFeaturedTitle: "Algebra",
		RelatedLimit:           12,
		NewReleasesLimit:       20,
		PopularLimit:           20,
		FeaturedLimit:          10,
		TopLimit:               10,
		PerSubjectLimit:        6,
	})

	limiter := middleware.NewRateLimiter(favoriteWritesPerMinute, time.Minute)
	t.Cleanup(limiter.Stop)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery())
	r.Use(middleware.Identity("secret", "edufleex", "default-user"))
	router.Setup(r,
		handler.NewVideoHandler(catalogService, videoService),
		handler.NewCategoryHandler(catalogService),
		handler.NewFavoriteHandler(favoriteService),
		handler.NewBrowseHandler(browseService),
		handler.NewSearchHandler(searchService),
		middleware.RateLimit(limiter),
	)
	return r, db
}

func do(r *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, url, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeOK(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	assert.True(t, env.Success)
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func decodeErr(t *testing.T, w *httptest.ResponseRecorder) response.ErrorInfo {
	t.Helper()
	var env response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	assert.Equal(t, w.Code, env.Error.Code)
	return env.Error
}

func seedMath(t *testing.T, db *gorm.DB) model.Video {
	t.Helper()
	c := testutil.Category(t, db, "Math")
	return testutil.Video(t, db, c.ID, "fk0wyv1HpFg", "Mathematics", "Grade 8", 1, testutil.Title("Algebra Basics"))
}

func TestFavoriteTwiceOverHTTP(t *testing.T) {
	r, db := newServer(t, 100)
	seedMath(t, db)

	body := dto.FavoriteRequest{VideoID: "fk0wyv1HpFg", UserID: "default-user"}
	first := do(r, http.MethodPost, "/api/v1/favorites", body)
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	second := do(r, http.MethodPost, "/api/v1/favorites", body)
	require.Equal(t, http.StatusOK, second.Code, second.Body.String())

	var a, b dto.FavoriteInfo
	decodeOK(t, first, &a)
	decodeOK(t, second, &b)
	assert.True(t, a.CreatedAt.Equal(b.CreatedAt))

	w := do(r, http.MethodGet, "/api/v1/favorites?userId=default-user", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []dto.FavoriteInfo
	decodeOK(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "fk0wyv1HpFg", list[0].VideoID)
	require.NotNil(t, list[0].Video)
	require.NotNil(t, list[0].Video.Category)
	assert.Equal(t, "Math", list[0].Video.Category.Name)
}

func TestRemoveFavoriteOverHTTP(t *testing.T) {
	r, db := newServer(t, 100)
	seedMath(t, db)

	body := dto.FavoriteRequest{VideoID: "fk0wyv1HpFg"}
	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/favorites", body).Code)

	var removed dto.FavoriteRemoveData
	w := do(r, http.MethodDelete, "/api/v1/favorites", body)
	require.Equal(t, http.StatusOK, w.Code)
	decodeOK(t, w, &removed)
	assert.True(t, removed.Removed)

	w = do(r, http.MethodDelete, "/api/v1/favorites", body)
	require.Equal(t, http.StatusOK, w.Code)
	decodeOK(t, w, &removed)
	assert.False(t, removed.Removed)
}

func TestFavoriteUnknownVideo(t *testing.T) {
	r, _ := newServer(t, 100)

	w := do(r, http.MethodPost, "/api/v1/favorites", dto.FavoriteRequest{VideoID: "missing"})
	require.Equal(t, http.StatusNotFound, w.Code)
	info := decodeErr(t, w)
	assert.Equal(t, "NotFound", info.Type)
	assert.Equal(t, "视频不存在", info.Message)
}

func TestFavoriteRejectsMalformedRef(t *testing.T) {
	r, _ := newServer(t, 100)

	w := do(r, http.MethodPost, "/api/v1/favorites", map[string]string{"videoId": "not a ref!"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BadRequest", decodeErr(t, w).Type)
}

func TestFavoriteWritesAreRateLimited(t *testing.T) {
	r, db := newServer(t, 1)
	seedMath(t, db)

	body := dto.FavoriteRequest{VideoID: "fk0wyv1HpFg"}
	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/favorites", body).Code)

	w := do(r, http.MethodPost, "/api/v1/favorites", body)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "TooManyRequests", decodeErr(t, w).Type)

	// 读接口不受限
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/favorites", nil).Code)
}

func TestListVideosQuery(t *testing.T) {
	r, db := newServer(t, 100)
	c := testutil.Category(t, db, "Math")
	testutil.Video(t, db, c.ID, "m1", "Mathematics", "Grade 8", 1, testutil.Views(10))
	testutil.Video(t, db, c.ID, "m2", "Mathematics", "Grade 9", 2, testutil.Views(50))
	testutil.Video(t, db, c.ID, "s1", "Science", "Grade 8", 3, testutil.Views(99))

	w := do(r, http.MethodGet, "/api/v1/videos?subject=Mathematics&sort=popularity&limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var videos []dto.VideoInfo
	decodeOK(t, w, &videos)
	require.Len(t, videos, 1)
	assert.Equal(t, "m2", videos[0].VideoID)

	w = do(r, http.MethodGet, "/api/v1/videos", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeOK(t, w, &videos)
	require.Len(t, videos, 3)
	assert.Equal(t, "s1", videos[0].VideoID)

	w = do(r, http.MethodGet, "/api/v1/videos?subject=Nothing", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeOK(t, w, &videos)
	assert.Empty(t, videos)
}

func TestListVideosRejectsBadQuery(t *testing.T) {
	r, _ := newServer(t, 100)

	for _, url := range []string{
		"/api/v1/videos?colour=red",
		"/api/v1/videos?limit=0",
		"/api/v1/videos?limit=abc",
		"/api/v1/videos?sort=random",
		"/api/v1/videos?featured=maybe",
		"/api/v1/videos?subject=",
	} {
		t.Run(url, func(t *testing.T) {
			w := do(r, http.MethodGet, url, nil)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "BadRequest", decodeErr(t, w).Type)
		})
	}
}

func TestVideoCRUD(t *testing.T) {
	r, db := newServer(t, 100)
	c := testutil.Category(t, db, "Math")

	create := dto.VideoCreateRequest{
		VideoID:    "abc123",
		Title:      "Fractions",
		Subject:    "Mathematics",
		Grade:      "Grade 5",
		Duration:   "12:30",
		CategoryID: c.ID,
	}
	w := do(r, http.MethodPost, "/api/v1/videos", create)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created dto.VideoInfo
	decodeOK(t, w, &created)
	assert.Equal(t, "abc123", created.VideoID)

	w = do(r, http.MethodPost, "/api/v1/videos", create)
	require.Equal(t, http.StatusConflict, w.Code)

	title := "Fractions II"
	w = do(r, http.MethodPut, "/api/v1/videos/"+strconv.FormatInt(created.ID, 10), dto.VideoUpdateRequest{Title: &title})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated dto.VideoInfo
	decodeOK(t, w, &updated)
	assert.Equal(t, "Fractions II", updated.Title)

	w = do(r, http.MethodDelete, "/api/v1/videos/"+strconv.FormatInt(created.ID, 10), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodDelete, "/api/v1/videos/"+strconv.FormatInt(created.ID, 10), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodDelete, "/api/v1/videos/abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordView(t *testing.T) {
	r, db := newServer(t, 100)
	v := seedMath(t, db)

	w := do(r, http.MethodPost, "/api/v1/videos/fk0wyv1HpFg/view", nil)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	var data dto.VideoViewData
	decodeOK(t, w, &data)
	assert.False(t, data.Queued)

	var stored model.Video
	require.NoError(t, db.First(&stored, v.ID).Error)
	assert.EqualValues(t, 1, stored.ViewCount)

	w = do(r, http.MethodPost, "/api/v1/videos/missing/view", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadThumbnailWithoutStorage(t *testing.T) {
	r, db := newServer(t, 100)
	v := seedMath(t, db)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "thumb.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n0000"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/videos/"+strconv.FormatInt(v.ID, 10)+"/thumbnail", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, response.RetryAfterSeconds, w.Header().Get("Retry-After"))
}

func TestCategories(t *testing.T) {
	r, _ := newServer(t, 100)

	for _, name := range []string{"Science", "Math"} {
		w := do(r, http.MethodPost, "/api/v1/categories", dto.CategoryCreateRequest{Name: name})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := do(r, http.MethodPost, "/api/v1/categories", dto.CategoryCreateRequest{Name: "Math"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Conflict", decodeErr(t, w).Type)

	w = do(r, http.MethodGet, "/api/v1/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var categories []dto.CategoryInfo
	decodeOK(t, w, &categories)
	require.Len(t, categories, 2)
	assert.Equal(t, "Math", categories[0].Name)
	assert.Equal(t, "Science", categories[1].Name)
}

func TestBrowseVideoDetail(t *testing.T) {
	r, db := newServer(t, 100)
	seedMath(t, db)

	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/favorites",
		dto.FavoriteRequest{VideoID: "fk0wyv1HpFg", UserID: "alice"}).Code)

	w := do(r, http.MethodGet, "/api/v1/browse/videos/fk0wyv1HpFg?userId=alice", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var detail dto.VideoDetailData
	decodeOK(t, w, &detail)
	assert.True(t, detail.IsFavorited)

	w = do(r, http.MethodGet, "/api/v1/browse/videos/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "视频不存在", decodeErr(t, w).Message)
}

func TestBrowseHomeEmptyCatalog(t *testing.T) {
	r, _ := newServer(t, 100)

	w := do(r, http.MethodGet, "/api/v1/browse/home", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var home dto.HomeData
	decodeOK(t, w, &home)
	assert.Nil(t, home.Hero)
}

func TestMyListRejectsUnknownSort(t *testing.T) {
	r, _ := newServer(t, 100)

	w := do(r, http.MethodGet, "/api/v1/browse/mylist?sort=views", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchFallsBackToDatabase(t *testing.T) {
	r, db := newServer(t, 100)
	seedMath(t, db)

	w := do(r, http.MethodGet, "/api/v1/search/videos?q=algebra", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var data dto.SearchVideoData
	decodeOK(t, w, &data)
	assert.Equal(t, "database", data.Source)
	assert.EqualValues(t, 1, data.Total)
}

func TestInvalidTokenIsRejected(t *testing.T) {
	r, _ := newServer(t, 100)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/favorites", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
