package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/backend/internal/app/auth"
	"github.com/edusphere/backend/internal/app/models"
	"github.com/edusphere/backend/internal/app/models/dto"
	"github.com/edusphere/backend/internal/app/services"
	"github.com/edusphere/backend/internal/middleware"
	"github.com/edusphere/backend/internal/pkg/apperrors"
	"github.com/edusphere/backend/internal/pkg/helpers"
)

// PostController handles post related operations
type PostController struct {
	postService services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService services.PostService) *PostController {
	return &PostController{postService: postService}
}

// GetAllPosts handles listing posts with pagination, optionally filtered by a
// search term, tag or author.
func (c *PostController) GetAllPosts(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)
	skip, limit := helpers.PageWindow(page, pageSize)

	var err error
	var posts interface{}

	switch {
	case ctx.Query("search") != "":
		posts, err = c.postService.SearchPosts(ctx, ctx.Query("search"), skip, limit)
	case ctx.Query("tag") != "":
		posts, err = c.postService.GetPostsByTag(ctx, ctx.Query("tag"), skip, limit)
	case ctx.Query("authorId") != "":
		posts, err = c.postService.GetPostsByAuthor(ctx, ctx.Query("authorId"), skip, limit)
	default:
		posts, err = c.postService.GetAllPosts(ctx, skip, limit)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPaginatedResponse(posts, page, pageSize)))
}

// GetMyPosts handles listing the caller's own posts.
func (c *PostController) GetMyPosts(ctx *gin.Context) {
	principal := middleware.CurrentPrincipal(ctx)
	if err := auth.RequireAuthenticated(principal); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	skip, limit := helpers.PageWindow(page, pageSize)

	posts, err := c.postService.GetPostsByAuthor(ctx, principal.ID, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPaginatedResponse(posts, page, pageSize)))
}

// GetPostByID handles retrieving a single post.
func (c *PostController) GetPostByID(ctx *gin.Context) {
	post, err := c.postService.GetPostByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if post == nil {
		middleware.HandleAPIError(ctx, apperrors.NewNotFoundError("post not found"))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// CreatePost handles post creation. Any authenticated user.
func (c *PostController) CreatePost(ctx *gin.Context) {
	principal := middleware.CurrentPrincipal(ctx)
	if err := auth.CanCreatePost(principal); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	post, err := c.postService.CreatePost(ctx, principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post))
}

// UpdatePost handles partial post updates. Author or admin only.
func (c *PostController) UpdatePost(ctx *gin.Context) {
	post, ok := c.authorizePostWrite(ctx)
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	updated, err := c.postService.UpdatePost(ctx, post.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(updated))
}

// LikePost handles liking a post. Any authenticated user.
func (c *PostController) LikePost(ctx *gin.Context) {
	if err := auth.RequireAuthenticated(middleware.CurrentPrincipal(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	post, err := c.postService.LikePost(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// UnlikePost handles unliking a post. Any authenticated user.
func (c *PostController) UnlikePost(ctx *gin.Context) {
	if err := auth.RequireAuthenticated(middleware.CurrentPrincipal(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	post, err := c.postService.UnlikePost(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// AddComment handles incrementing the comment counter. Any authenticated user.
func (c *PostController) AddComment(ctx *gin.Context) {
	if err := auth.RequireAuthenticated(middleware.CurrentPrincipal(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	post, err := c.postService.AddComment(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// DeletePost handles post deletion. Author or admin only.
func (c *PostController) DeletePost(ctx *gin.Context) {
	post, ok := c.authorizePostWrite(ctx)
	if !ok {
		return
	}

	if err := c.postService.DeletePost(ctx, post.ID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"deleted": true}))
}

// authorizePostWrite loads the target post and checks the write policy
// against the caller.
func (c *PostController) authorizePostWrite(ctx *gin.Context) (*models.Post, bool) {
	post, err := c.postService.GetPostByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	if post == nil {
		middleware.HandleAPIError(ctx, apperrors.NewNotFoundError("post not found"))
		return nil, false
	}

	if err := auth.CanModifyPost(middleware.CurrentPrincipal(ctx), post); err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	return post, true
}
