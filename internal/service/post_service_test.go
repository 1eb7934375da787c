package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shenlye/tricore-api/internal/repository"
)

func newPostService(t *testing.T) (PostService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewPostService(
		repository.NewPostRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewTagRepository(db),
	), db
}

func TestCreatePost_GeneratesSlugFromTitle(t *testing.T) {
	svc, _ := newPostService(t)
	ctx := context.Background()

	view, err := svc.Create(ctx, CreatePostInput{
		Title:       strPtr("Hello World"),
		Content:     "content",
		IsPublished: true,
		AuthorID:    1,
	})
	require.NoError(t, err)

	require.NotNil(t, view.Slug)
	assert.Equal(t, "hello-world", *view.Slug)
	assert.Equal(t, "seed", view.GrowthStage)
	assert.True(t, view.IsPublished)
	assert.NotNil(t, view.PublishedAt)
}

func TestCreatePost_DraftHasNoPublishedAt(t *testing.T) {
	svc, _ := newPostService(t)

	view, err := svc.Create(context.Background(), CreatePostInput{
		Title:    strPtr("Draft"),
		Content:  "c",
		AuthorID: 1,
	})
	require.NoError(t, err)

	assert.False(t, view.IsPublished)
	assert.Nil(t, view.PublishedAt)
}

func TestCreatePost_SlugConflict(t *testing.T) {
	svc, _ := newPostService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreatePostInput{Title: strPtr("Same Title"), Content: "a", AuthorID: 1})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreatePostInput{Title: strPtr("Same Title"), Content: "b", AuthorID: 1})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestCreatePost_WithCategoryAndTags(t *testing.T) {
	svc, _ := newPostService(t)
	ctx := context.Background()

	view, err := svc.Create(ctx, CreatePostInput{
		Title:    strPtr("Tagged"),
		Content:  "c",
		Category: strPtr("技术"),
		Tags:     []string{"go", "gorm", " ", "go"},
		AuthorID: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"技术"}, view.Categories)
	// 空白标签被丢弃，重复名收敛到同一条记录
	assert.ElementsMatch(t, []string{"go", "gorm"}, view.Tags)
}

func TestDeletePost_FreesSlugForReuse(t *testing.T) {
	svc, _ := newPostService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreatePostInput{Title: strPtr("Reused"), Content: "v1", AuthorID: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, first.ID))

	// 软删除后原 slug 可立即复用
	second, err := svc.Create(ctx, CreatePostInput{Title: strPtr("Reused"), Content: "v2", AuthorID: 1})
	require.NoError(t, err)
	assert.Equal(t, "reused", *second.Slug)
	assert.NotEqual(t, first.ID, second.ID)

	// 被删文章从读路径消失
	_, err = svc.GetByIdentifier(ctx, fmt.Sprint(first.ID), false)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeletePost_NotFound(t *testing.T) {
	svc, _ := newPostService(t)

	err := svc.Delete(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestGetByIdentifier_IDAndSlug(t *testing.T) {
	svc, _ := newPostService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreatePostInput{
		Title: strPtr("Findable"), Content: "c", IsPublished: true, AuthorID: 1,
	})
	require.NoError(t, err)

	byID, err := svc.GetByIdentifier(ctx, fmt.Sprint(created.ID), true)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	bySlug, err := svc.GetByIdentifier(ctx, "findable", true)
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)
}

func TestGetByIdentifier_DraftHiddenFromPublic(t *testing.T) {
	svc, _ := newPostService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreatePostInput{Title: strPtr("Hidden"), Content: "c", AuthorID: 1})
	require.NoError(t, err)

	_, err = svc.GetByIdentifier(ctx, "hidden", true)
	assert.ErrorIs(t, err, ErrPostNotFound)

	view, err := svc.GetByIdentifier(ctx, "hidden", false)
	require.NoError(t, err)
	assert.Equal(t, created.ID, view.ID)
}

func TestGetByIdentifier_DerivesDescription(t *testing.T) {
	svc, _ := newPostService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreatePostInput{
		Title:       strPtr("No Desc"),
		Content:     "# Title\n\nplain body text",
		IsPublished: true,
		AuthorID:    1,
	})
	require.NoError(t, err)

	view, err := svc.GetByIdentifier(ctx, "no-desc", true)
	require.NoError(t, err)
	assert.Equal(t, "Title plain body text", view.Description)
}

func TestListPosts_VisibilityAndPagination(t *testing.T) {
	svc, _ := newPostService(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := svc.Create(ctx, CreatePostInput{
			Title:       strPtr(fmt.Sprintf("Published %d", i)),
			Content:     "c",
			IsPublished: true,
			AuthorID:    1,
		})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, CreatePostInput{Title: strPtr("A Draft"), Content: "c", AuthorID: 1})
	require.NoError(t, err)

	views, total, err := svc.List(ctx, 1, 10, "", "", true)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, views, 10)

	views, total, err = svc.List(ctx, 2, 10, "", "", true)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, views, 5)

	_, total, err = svc.List(ctx, 1, 10, "", "", false)
	require.NoError(t, err)
	assert.Equal(t, int64(16), total)
}

func TestListPosts_FilterByCategoryAndTag(t *testing.T) {
	svc, _ := newPostService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreatePostInput{
		Title: strPtr("Go Post"), Content: "c", IsPublished: true,
		Category: strPtr("Tech"), Tags: []string{"go"}, AuthorID: 1,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreatePostInput{
		Title: strPtr("Life Post"), Content: "c", IsPublished: true,
		Category: strPtr("Life"), AuthorID: 1,
	})
	require.NoError(t, err)

	views, total, err := svc.List(ctx, 1, 10, "tech", "", true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, views, 1)
	assert.Equal(t, "go-post", *views[0].Slug)

	views, total, err = svc.List(ctx, 1, 10, "", "go", true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, views, 1)
	assert.Equal(t, "go-post", *views[0].Slug)

	// 不存在的过滤值返回空页而不是错误
	views, total, err = svc.List(ctx, 1, 10, "nope", "", true)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, views)
}

func TestListPosts_ClampsLimit(t *testing.T) {
	svc, _ := newPostService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreatePostInput{Title: strPtr("One"), Content: "c", IsPublished: true, AuthorID: 1})
	require.NoError(t, err)

	_, _, err = svc.List(ctx, 0, -5, "", "", true)
	assert.NoError(t, err)
	_, _, err = svc.List(ctx, 1, 500, "", "", true)
	assert.NoError(t, err)
}

func TestUpdatePost_PartialSemantics(t *testing.T) {
	svc, _ := newPostService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreatePostInput{
		Title: strPtr("Original"), Content: "original content",
		Category: strPtr("Tech"), Tags: []string{"go"}, AuthorID: 1,
	})
	require.NoError(t, err)

	// 只给 title，其余字段保持不变
	view, err := svc.Update(ctx, created.ID, UpdatePostInput{Title: strPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", *view.Title)
	assert.Equal(t, "original content", view.Content)
	assert.Equal(t, []string{"Tech"}, view.Categories)
	assert.Equal(t, []string{"go"}, view.Tags)

	// 空串清空分类，空切片清空标签
	view, err = svc.Update(ctx, created.ID, UpdatePostInput{
		Category: strPtr(""),
		Tags:     []string{},
	})
	require.NoError(t, err)
	assert.Empty(t, view.Categories)
	assert.Empty(t, view.Tags)
}

func TestUpdatePost_PublishSetsTimestamp(t *testing.T) {
	svc, _ := newPostService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreatePostInput{Title: strPtr("Later"), Content: "c", AuthorID: 1})
	require.NoError(t, err)
	require.Nil(t, created.PublishedAt)

	view, err := svc.Update(ctx, created.ID, UpdatePostInput{IsPublished: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, view.IsPublished)
	assert.NotNil(t, view.PublishedAt)
}

func TestUpdatePost_SlugConflict(t *testing.T) {
	svc, _ := newPostService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreatePostInput{Title: strPtr("First"), Content: "c", AuthorID: 1})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreatePostInput{Title: strPtr("Second"), Content: "c", AuthorID: 1})
	require.NoError(t, err)

	_, err = svc.Update(ctx, second.ID, UpdatePostInput{Slug: strPtr("first")})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestSearchPosts(t *testing.T) {
	svc, _ := newPostService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreatePostInput{Title: strPtr("Gardening Notes"), Content: "c", IsPublished: true, AuthorID: 1})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreatePostInput{Title: strPtr("Cooking"), Content: "c", IsPublished: true, AuthorID: 1})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreatePostInput{Title: strPtr("Garden Draft"), Content: "c", AuthorID: 1})
	require.NoError(t, err)

	results, err := svc.Search(ctx, "Garden", 10, true)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Gardening Notes", *results[0].Title)

	results, err = svc.Search(ctx, "Garden", 10, false)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchPosts_CapsLimitAt50(t *testing.T) {
	svc, _ := newPostService(t)
	ctx := context.Background()

	for i := 0; i < 55; i++ {
		_, err := svc.Create(ctx, CreatePostInput{
			Title:       strPtr(fmt.Sprintf("Note %02d", i)),
			Content:     "c",
			IsPublished: true,
			AuthorID:    1,
		})
		require.NoError(t, err)
	}

	results, err := svc.Search(ctx, "Note", 500, true)
	require.NoError(t, err)
	assert.Len(t, results, 50)

	// 非法 limit 回落到默认值
	results, err = svc.Search(ctx, "Note", 0, true)
	require.NoError(t, err)
	assert.Len(t, results, 10)
}
