package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusphere/backend/internal/app/models"
	"github.com/edusphere/backend/internal/app/models/dto"
	"github.com/edusphere/backend/internal/pkg/apperrors"
)

func testAuthor() *models.User {
	u := &models.User{Username: "alice", Role: models.RoleStudent}
	u.ID = "doc_500"
	u.Kind = models.KindUser
	return u
}

func TestCreatePostDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewPostService(testStore(), zerolog.Nop())
	author := testAuthor()

	created, err := svc.CreatePost(ctx, author, &dto.CreatePostRequest{
		Title:   "Office hours moved",
		Content: "Now on Thursdays",
		Tags:    []string{"announcement"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, created.Likes)
	assert.Equal(t, 0, created.Comments)
	assert.Equal(t, author.ID, created.Author.ID)
}

func TestLikeUnlikeScenario(t *testing.T) {
	ctx := context.Background()
	svc := NewPostService(testStore(), zerolog.Nop())

	created, err := svc.CreatePost(ctx, testAuthor(), &dto.CreatePostRequest{
		Title: "t", Content: "c",
	})
	require.NoError(t, err)

	// two likes then three unlikes lands on zero, never negative
	for i := 0; i < 2; i++ {
		_, err = svc.LikePost(ctx, created.ID)
		require.NoError(t, err)
	}
	var post *models.Post
	for i := 0; i < 3; i++ {
		post, err = svc.UnlikePost(ctx, created.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, post.Likes)

	post, err = svc.UnlikePost(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, post.Likes)
}

func TestLikeMissingPost(t *testing.T) {
	svc := NewPostService(testStore(), zerolog.Nop())
	_, err := svc.LikePost(context.Background(), "doc_404")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()
	svc := NewPostService(testStore(), zerolog.Nop())

	created, err := svc.CreatePost(ctx, testAuthor(), &dto.CreatePostRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	post, err := svc.AddComment(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, post.Comments)
}

func TestGetPostsByTagNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := NewPostService(testStore(), zerolog.Nop())
	author := testAuthor()

	first, err := svc.CreatePost(ctx, author, &dto.CreatePostRequest{
		Title: "first", Content: "c", Tags: []string{"golang"},
	})
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, author, &dto.CreatePostRequest{
		Title: "unrelated", Content: "c", Tags: []string{"misc"},
	})
	require.NoError(t, err)
	second, err := svc.CreatePost(ctx, author, &dto.CreatePostRequest{
		Title: "second", Content: "c", Tags: []string{"golang", "tips"},
	})
	require.NoError(t, err)

	posts, err := svc.GetPostsByTag(ctx, "golang", 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)
}

func TestGetPostsByAuthor(t *testing.T) {
	ctx := context.Background()
	svc := NewPostService(testStore(), zerolog.Nop())
	alice := testAuthor()
	bob := &models.User{Username: "bob", Role: models.RoleStudent}
	bob.ID = "doc_501"

	_, err := svc.CreatePost(ctx, alice, &dto.CreatePostRequest{Title: "a1", Content: "c"})
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, bob, &dto.CreatePostRequest{Title: "b1", Content: "c"})
	require.NoError(t, err)

	posts, err := svc.GetPostsByAuthor(ctx, alice.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "a1", posts[0].Title)
}

func TestGetPostsByAuthorPagination(t *testing.T) {
	ctx := context.Background()
	svc := NewPostService(testStore(), zerolog.Nop())
	author := testAuthor()

	for i := 0; i < 5; i++ {
		_, err := svc.CreatePost(ctx, author, &dto.CreatePostRequest{
			Title: fmt.Sprintf("Post %d", i), Content: "c",
		})
		require.NoError(t, err)
	}

	first, err := svc.GetPostsByAuthor(ctx, author.ID, 0, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "Post 4", first[0].Title)

	last, err := svc.GetPostsByAuthor(ctx, author.ID, 4, 2)
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, "Post 0", last[0].Title)
}

func TestSearchPostsOverTitleContentTags(t *testing.T) {
	ctx := context.Background()
	svc := NewPostService(testStore(), zerolog.Nop())
	author := testAuthor()

	_, err := svc.CreatePost(ctx, author, &dto.CreatePostRequest{
		Title: "Study group", Content: "Meet at the library", Tags: []string{"social"},
	})
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, author, &dto.CreatePostRequest{
		Title: "Exam prep", Content: "Past papers inside", Tags: []string{"library-resources"},
	})
	require.NoError(t, err)

	hits, err := svc.SearchPosts(ctx, "LIBRARY", 0, 0)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	hits, err = svc.SearchPosts(ctx, "exam", 0, 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Exam prep", hits[0].Title)
}

func TestUpdatePostPartialPatch(t *testing.T) {
	ctx := context.Background()
	svc := NewPostService(testStore(), zerolog.Nop())

	created, err := svc.CreatePost(ctx, testAuthor(), &dto.CreatePostRequest{
		Title: "old title", Content: "body", Tags: []string{"a"},
	})
	require.NoError(t, err)

	title := "new title"
	updated, err := svc.UpdatePost(ctx, created.ID, &dto.UpdatePostRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, "body", updated.Content)
	assert.Equal(t, []string{"a"}, updated.Tags)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}
