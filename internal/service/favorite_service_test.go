package service

import (
	"context"
	"testing"
	"time"

	"edufleex-go/internal/apperr"
	"edufleex-go/internal/repository"
	"edufleex-go/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFavoriteService(db *gorm.DB) *FavoriteService {
	return NewFavoriteService(repository.NewFavoriteRepository(db), repository.NewVideoRepository(db))
}

func TestAddFavoriteTwiceKeepsOneEntry(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newFavoriteService(db)
	ctx := context.Background()

	c := testutil.Category(t, db, "Math")
	testutil.Video(t, db, c.ID, "fk0wyv1HpFg", "Mathematics", "Grade 8", 1, testutil.Title("Algebra Basics"))

	first, err := svc.AddFavorite(ctx, "default-user", "fk0wyv1HpFg")
	require.NoError(t, err)
	second, err := svc.AddFavorite(ctx, "default-user", "fk0wyv1HpFg")
	require.NoError(t, err)

	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
	assert.Equal(t, "fk0wyv1HpFg", second.VideoID)

	list, err := svc.ListFavorites(ctx, "default-user")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "fk0wyv1HpFg", list[0].VideoID)
	require.NotNil(t, list[0].Video)
	assert.Equal(t, "Algebra Basics", list[0].Video.Title)
	require.NotNil(t, list[0].Video.Category)
	assert.Equal(t, "Math", list[0].Video.Category.Name)
}

func TestRemoveFavoriteIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newFavoriteService(db)
	ctx := context.Background()

	c := testutil.Category(t, db, "Math")
	testutil.Video(t, db, c.ID, "v1", "Mathematics", "Grade 8", 1)

	_, err := svc.AddFavorite(ctx, "alice", "v1")
	require.NoError(t, err)

	removed, err := svc.RemoveFavorite(ctx, "alice", "v1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.RemoveFavorite(ctx, "alice", "v1")
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = svc.RemoveFavorite(ctx, "alice", "no-such-video")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestFavoriteRoundTrip(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newFavoriteService(db)
	ctx := context.Background()

	c := testutil.Category(t, db, "Math")
	testutil.Video(t, db, c.ID, "v1", "Mathematics", "Grade 8", 1)

	fav, err := svc.IsFavorited(ctx, "alice", "v1")
	require.NoError(t, err)
	assert.False(t, fav)

	_, err = svc.AddFavorite(ctx, "alice", "v1")
	require.NoError(t, err)
	fav, err = svc.IsFavorited(ctx, "alice", "v1")
	require.NoError(t, err)
	assert.True(t, fav)

	// 不同用户互不影响
	fav, err = svc.IsFavorited(ctx, "bob", "v1")
	require.NoError(t, err)
	assert.False(t, fav)

	_, err = svc.RemoveFavorite(ctx, "alice", "v1")
	require.NoError(t, err)
	fav, err = svc.IsFavorited(ctx, "alice", "v1")
	require.NoError(t, err)
	assert.False(t, fav)
}

func TestListFavoritesNewestFirst(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newFavoriteService(db)
	ctx := context.Background()

	c := testutil.Category(t, db, "Math")
	v1 := testutil.Video(t, db, c.ID, "v1", "Mathematics", "Grade 8", 1)
	v2 := testutil.Video(t, db, c.ID, "v2", "Mathematics", "Grade 8", 2)

	require.NoError(t, db.Exec("INSERT INTO favorites (user_id, video_id, created_at) VALUES (?, ?, ?), (?, ?, ?)",
		"alice", v1.ID, testutil.Base.Add(2*time.Minute), "alice", v2.ID, testutil.Base).Error)

	list, err := svc.ListFavorites(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "v1", list[0].VideoID)
	assert.Equal(t, "v2", list[1].VideoID)

	empty, err := svc.ListFavorites(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestAddFavoriteErrors(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newFavoriteService(db)
	ctx := context.Background()

	_, err := svc.AddFavorite(ctx, "alice", "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.AddFavorite(ctx, "", "missing")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = svc.AddFavorite(ctx, "alice", " ")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = svc.RemoveFavorite(ctx, "", "v1")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestBatchStatus(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newFavoriteService(db)
	ctx := context.Background()

	c := testutil.Category(t, db, "Math")
	testutil.Video(t, db, c.ID, "v1", "Mathematics", "Grade 8", 1)
	testutil.Video(t, db, c.ID, "v2", "Mathematics", "Grade 8", 2)
	_, err := svc.AddFavorite(ctx, "alice", "v2")
	require.NoError(t, err)

	status, err := svc.BatchStatus(ctx, "alice", []string{"v1", "v2", "ghost"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"v1": false, "v2": true, "ghost": false}, status)
}
