package services

import (
	"context"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/edusphere/backend/internal/app/models"
	"github.com/edusphere/backend/internal/app/models/dto"
	"github.com/edusphere/backend/internal/docstore"
	"github.com/edusphere/backend/internal/pkg/apperrors"
)

// PostService defines the interface for post operations
type PostService interface {
	CreatePost(ctx context.Context, author *models.User, req *dto.CreatePostRequest) (*models.Post, error)
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetAllPosts(ctx context.Context, skip, limit int) ([]*models.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID string, skip, limit int) ([]*models.Post, error)
	GetPostsByTag(ctx context.Context, tag string, skip, limit int) ([]*models.Post, error)
	UpdatePost(ctx context.Context, id string, req *dto.UpdatePostRequest) (*models.Post, error)
	LikePost(ctx context.Context, id string) (*models.Post, error)
	UnlikePost(ctx context.Context, id string) (*models.Post, error)
	AddComment(ctx context.Context, id string) (*models.Post, error)
	DeletePost(ctx context.Context, id string) error
	SearchPosts(ctx context.Context, term string, skip, limit int) ([]*models.Post, error)
}

// postServiceImpl implements PostService
type postServiceImpl struct {
	crudService[models.Post]
}

// NewPostService creates a new PostService
func NewPostService(store docstore.Store, logger zerolog.Logger) PostService {
	return &postServiceImpl{
		crudService: newCrudService[models.Post](store, models.KindPost, logger),
	}
}

// CreatePost creates a post authored by the given user. Like and comment
// counters start at zero.
func (s *postServiceImpl) CreatePost(ctx context.Context, author *models.User, req *dto.CreatePostRequest) (*models.Post, error) {
	if author == nil {
		return nil, apperrors.ErrAuthenticationRequired
	}
	if req.Title == "" || req.Content == "" {
		return nil, apperrors.NewValidationError("post title and content are required")
	}

	post := &models.Post{
		Author:   *author,
		Title:    req.Title,
		Content:  req.Content,
		Tags:     normalizeTopics(req.Tags),
		Likes:    0,
		Comments: 0,
	}

	created, err := s.create(ctx, post)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("postId", created.ID).Str("authorId", author.ID).Msg("Post created")
	return created, nil
}

// GetPostByID returns the post, or (nil, nil) when it does not exist.
func (s *postServiceImpl) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	return s.getByID(ctx, id)
}

// GetAllPosts lists posts newest first.
func (s *postServiceImpl) GetAllPosts(ctx context.Context, skip, limit int) ([]*models.Post, error) {
	return s.list(ctx, window(docstore.Query{}, skip, limit))
}

// GetPostsByAuthor lists the posts written by one author.
func (s *postServiceImpl) GetPostsByAuthor(ctx context.Context, authorID string, skip, limit int) ([]*models.Post, error) {
	q := docstore.Query{
		Equals: map[string]interface{}{"author.id": authorID},
	}
	return s.list(ctx, window(q, skip, limit))
}

// GetPostsByTag lists posts carrying the exact tag.
func (s *postServiceImpl) GetPostsByTag(ctx context.Context, tag string, skip, limit int) ([]*models.Post, error) {
	q := docstore.Query{
		ArrayContains: map[string]string{"tags": tag},
	}
	return s.list(ctx, window(q, skip, limit))
}

// UpdatePost applies a partial update; nil request fields are left unchanged.
func (s *postServiceImpl) UpdatePost(ctx context.Context, id string, req *dto.UpdatePostRequest) (*models.Post, error) {
	patch := docstore.Document{}
	if req.Title != nil {
		patch["title"] = *req.Title
	}
	if req.Content != nil {
		patch["content"] = *req.Content
	}
	if req.Tags != nil {
		patch["tags"] = normalizeTopics(*req.Tags)
	}

	return s.update(ctx, id, patch, req.Revision)
}

// LikePost increments the like counter.
func (s *postServiceImpl) LikePost(ctx context.Context, id string) (*models.Post, error) {
	return s.adjustLikes(ctx, id, 1)
}

// UnlikePost decrements the like counter, flooring at zero.
func (s *postServiceImpl) UnlikePost(ctx context.Context, id string) (*models.Post, error) {
	return s.adjustLikes(ctx, id, -1)
}

func (s *postServiceImpl) adjustLikes(ctx context.Context, id string, delta int) (*models.Post, error) {
	post, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperrors.NewNotFoundError("post " + id + " not found")
	}

	likes := post.Likes + delta
	if likes < 0 {
		likes = 0
	}
	return s.update(ctx, id, docstore.Document{"likes": likes}, "")
}

// AddComment increments the comment counter. Comments are counted, not stored.
func (s *postServiceImpl) AddComment(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperrors.NewNotFoundError("post " + id + " not found")
	}
	return s.update(ctx, id, docstore.Document{"comments": post.Comments + 1}, "")
}

// DeletePost removes the post.
func (s *postServiceImpl) DeletePost(ctx context.Context, id string) error {
	if err := s.delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("postId", id).Msg("Post deleted")
	return nil
}

// SearchPosts matches the term as a case-insensitive substring of the post
// title, content or tags.
func (s *postServiceImpl) SearchPosts(ctx context.Context, term string, skip, limit int) ([]*models.Post, error) {
	if term == "" {
		return s.GetAllPosts(ctx, skip, limit)
	}
	pattern := regexp.QuoteMeta(term)
	q := docstore.Query{
		Or: []docstore.Query{
			{Regex: map[string]string{"title": pattern}},
			{Regex: map[string]string{"content": pattern}},
			{Regex: map[string]string{"tags": pattern}},
		},
	}
	return s.list(ctx, window(q, skip, limit))
}
