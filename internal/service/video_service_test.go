package service

import (
	"bytes"
	"context"
	"testing"

	"edufleex-go/internal/api/dto"
	"edufleex-go/internal/apperr"
	"edufleex-go/internal/repository"
	"edufleex-go/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newVideoService(db *gorm.DB, publisher ViewPublisher, thumbnails ThumbnailStore, index SearchIndex) *VideoService {
	return NewVideoService(repository.NewVideoRepository(db), repository.NewCategoryRepository(db), publisher, thumbnails, index)
}

func TestCreateVideo(t *testing.T) {
	db := testutil.NewDB(t)
	index := &stubIndex{}
	svc := newVideoService(db, nil, nil, index)
	ctx := context.Background()

	c := testutil.Category(t, db, "Math")
	req := &dto.VideoCreateRequest{
		VideoID: "fk0wyv1HpFg", Title: "Algebra Basics", Subject: "Mathematics",
		Grade: "Grade 8", Duration: "12:30", CategoryID: c.ID,
	}

	info, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "fk0wyv1HpFg", info.VideoID)
	require.NotNil(t, info.Category)
	assert.Equal(t, "Math", info.Category.Name)
	assert.Equal(t, []int64{info.ID}, index.synced)

	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	req.VideoID = "other"
	req.CategoryID = 999
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateVideoPartial(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newVideoService(db, nil, nil, nil)
	ctx := context.Background()

	c := testutil.Category(t, db, "Math")
	v := testutil.Video(t, db, c.ID, "v1", "Mathematics", "Grade 8", 1, testutil.Title("Original"))

	views := int64(41)
	info, err := svc.Update(ctx, v.ID, &dto.VideoUpdateRequest{Views: &views})
	require.NoError(t, err)
	assert.EqualValues(t, 41, info.Views)
	assert.Equal(t, "Original", info.Title)

	_, err = svc.Update(ctx, v.ID, &dto.VideoUpdateRequest{})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = svc.Update(ctx, 999, &dto.VideoUpdateRequest{Views: &views})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	missing := int64(999)
	_, err = svc.Update(ctx, v.ID, &dto.VideoUpdateRequest{CategoryID: &missing})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteVideoRemovesFavorites(t *testing.T) {
	db := testutil.NewDB(t)
	index := &stubIndex{}
	svc := newVideoService(db, nil, nil, index)
	favorites := newFavoriteService(db)
	ctx := context.Background()

	c := testutil.Category(t, db, "Math")
	v := testutil.Video(t, db, c.ID, "v1", "Mathematics", "Grade 8", 1)
	_, err := favorites.AddFavorite(ctx, "alice", "v1")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, v.ID))
	assert.Equal(t, []int64{v.ID}, index.removed)

	list, err := favorites.ListFavorites(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, svc.Delete(ctx, v.ID), apperr.ErrNotFound)
}

func TestRecordView(t *testing.T) {
	db := testutil.NewDB(t)
	videos := repository.NewVideoRepository(db)
	ctx := context.Background()

	c := testutil.Category(t, db, "Math")
	v := testutil.Video(t, db, c.ID, "v1", "Mathematics", "Grade 8", 1)

	t.Run("direct without publisher", func(t *testing.T) {
		svc := newVideoService(db, nil, nil, nil)
		queued, err := svc.RecordView(ctx, "v1", "alice")
		require.NoError(t, err)
		assert.False(t, queued)

		got, err := videos.GetByID(ctx, v.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, got.ViewCount)
	})

	t.Run("queued through publisher", func(t *testing.T) {
		pub := &recordingPublisher{}
		svc := newVideoService(db, pub, nil, nil)
		queued, err := svc.RecordView(ctx, "v1", "alice")
		require.NoError(t, err)
		assert.True(t, queued)
		require.Len(t, pub.events, 1)
		assert.Equal(t, v.ID, pub.events[0].VideoID)

		got, err := videos.GetByID(ctx, v.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, got.ViewCount)

		require.NoError(t, svc.HandleViewEvent(ctx, pub.events[0]))
		got, err = videos.GetByID(ctx, v.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, got.ViewCount)
	})

	t.Run("falls back when publish fails", func(t *testing.T) {
		svc := newVideoService(db, &recordingPublisher{err: errUnavailable}, nil, nil)
		queued, err := svc.RecordView(ctx, "v1", "")
		require.NoError(t, err)
		assert.False(t, queued)

		got, err := videos.GetByID(ctx, v.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 3, got.ViewCount)
	})

	t.Run("unknown video", func(t *testing.T) {
		svc := newVideoService(db, nil, nil, nil)
		_, err := svc.RecordView(ctx, "ghost", "")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestUploadThumbnail(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	c := testutil.Category(t, db, "Math")
	v := testutil.Video(t, db, c.ID, "v1", "Mathematics", "Grade 8", 1)

	_, err := newVideoService(db, nil, nil, nil).UploadThumbnail(ctx, v.ID, bytes.NewReader([]byte("png")), 3, "image/png")
	assert.ErrorIs(t, err, apperr.ErrStoreUnavailable)

	store := &memoryThumbnails{}
	svc := newVideoService(db, nil, store, nil)

	_, err = svc.UploadThumbnail(ctx, v.ID, bytes.NewReader([]byte("gif")), 3, "image/gif")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	data, err := svc.UploadThumbnail(ctx, v.ID, bytes.NewReader([]byte("png")), 3, "image/png")
	require.NoError(t, err)
	assert.Contains(t, data.Thumbnail, "http://cdn.test/thumbnails/v1/")
	assert.Len(t, store.objects, 1)

	got, err := repository.NewVideoRepository(db).GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, data.Thumbnail, got.Thumbnail)
}
