package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"blogify/internal/apperr"
	"blogify/internal/pagination"
	"blogify/internal/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakePosts map[uint]bool

func (f fakePosts) PostExists(_ context.Context, id uint) (bool, error) {
	return f[id], nil
}

type brokenPosts struct{}

func (brokenPosts) PostExists(context.Context, uint) (bool, error) {
	return false, errors.New("db down")
}

func setupService(t *testing.T, posts PostChecker) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&Comment{}))
	return NewService(NewStore(conn), posts)
}

func TestCreate_RequiresExistingPost(t *testing.T) {
	svc := setupService(t, fakePosts{1: true})
	ctx := context.Background()

	c, err := svc.Create(ctx, 9, CreateInput{Content: "nice post", PostID: 1})
	require.NoError(t, err)
	assert.Equal(t, uint(9), c.UserID)
	assert.NotEmpty(t, c.UUID)

	_, err = svc.Create(ctx, 9, CreateInput{Content: "orphan", PostID: 2})
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
}

func TestCreate_PostLookupFailureIsInternal(t *testing.T) {
	svc := setupService(t, brokenPosts{})
	_, err := svc.Create(context.Background(), 1, CreateInput{Content: "x", PostID: 1})
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestListByAuthor_OnlyOwnComments(t *testing.T) {
	svc := setupService(t, fakePosts{1: true})
	ctx := context.Background()
	for i := 0; i < 6; i++ {
		_, err := svc.Create(ctx, 1, CreateInput{Content: fmt.Sprintf("c%d", i), PostID: 1})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, 2, CreateInput{Content: "other", PostID: 1})
	require.NoError(t, err)

	comments, total, err := svc.ListByAuthor(ctx, 1, pagination.Default())
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	assert.Len(t, comments, 5)
	for _, c := range comments {
		assert.Equal(t, uint(1), c.UserID)
	}
}

func TestDelete_ByUUIDAndMissing(t *testing.T) {
	svc := setupService(t, fakePosts{1: true})
	ctx := context.Background()
	c, err := svc.Create(ctx, 1, CreateInput{Content: "bye", PostID: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, request.Lookup{UUID: c.UUID}))

	_, err = svc.Get(ctx, request.Lookup{ID: c.ID})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	err = svc.Delete(ctx, request.Lookup{ID: c.ID})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
