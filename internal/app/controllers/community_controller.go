package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/backend/internal/app/auth"
	"github.com/edusphere/backend/internal/app/models/dto"
	"github.com/edusphere/backend/internal/app/services"
	"github.com/edusphere/backend/internal/middleware"
	"github.com/edusphere/backend/internal/pkg/apperrors"
	"github.com/edusphere/backend/internal/pkg/helpers"
)

// CommunityController handles community related operations
type CommunityController struct {
	communityService services.CommunityService
}

// NewCommunityController creates a new CommunityController
func NewCommunityController(communityService services.CommunityService) *CommunityController {
	return &CommunityController{communityService: communityService}
}

// GetAllCommunities handles listing communities with pagination, optionally
// filtered by a name search or topic.
func (c *CommunityController) GetAllCommunities(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)
	skip, limit := helpers.PageWindow(page, pageSize)

	var err error
	var communities interface{}

	switch {
	case ctx.Query("search") != "":
		communities, err = c.communityService.SearchByName(ctx, ctx.Query("search"), skip, limit)
	case ctx.Query("topic") != "":
		communities, err = c.communityService.GetCommunitiesByTopic(ctx, ctx.Query("topic"), skip, limit)
	default:
		communities, err = c.communityService.GetAllCommunities(ctx, skip, limit)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPaginatedResponse(communities, page, pageSize)))
}

// GetCommunityByID handles retrieving a single community.
func (c *CommunityController) GetCommunityByID(ctx *gin.Context) {
	community, err := c.communityService.GetCommunityByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if community == nil {
		middleware.HandleAPIError(ctx, apperrors.NewNotFoundError("community not found"))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(community))
}

// CreateCommunity handles community creation. Any authenticated user.
func (c *CommunityController) CreateCommunity(ctx *gin.Context) {
	if err := auth.CanCreateCommunity(middleware.CurrentPrincipal(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateCommunityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	community, err := c.communityService.CreateCommunity(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(community))
}

// UpdateCommunity handles partial community updates. Admin only.
func (c *CommunityController) UpdateCommunity(ctx *gin.Context) {
	if err := auth.CanModifyCommunity(middleware.CurrentPrincipal(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateCommunityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	community, err := c.communityService.UpdateCommunity(ctx, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(community))
}

// AddTopic handles adding a topic to a community. Admin only.
func (c *CommunityController) AddTopic(ctx *gin.Context) {
	if err := auth.CanModifyCommunity(middleware.CurrentPrincipal(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	community, err := c.communityService.AddTopic(ctx, ctx.Param("id"), req.Topic)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(community))
}

// RemoveTopic handles removing a topic from a community. Admin only.
func (c *CommunityController) RemoveTopic(ctx *gin.Context) {
	if err := auth.CanModifyCommunity(middleware.CurrentPrincipal(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	community, err := c.communityService.RemoveTopic(ctx, ctx.Param("id"), ctx.Param("topic"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(community))
}

// UpdateMembers handles setting the member count. Admin only.
func (c *CommunityController) UpdateMembers(ctx *gin.Context) {
	if err := auth.CanModifyCommunity(middleware.CurrentPrincipal(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req struct {
		Members *int `json:"members" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	community, err := c.communityService.UpdateMembers(ctx, ctx.Param("id"), *req.Members)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(community))
}

// DeleteCommunity handles community deletion. Admin only.
func (c *CommunityController) DeleteCommunity(ctx *gin.Context) {
	if err := auth.CanModifyCommunity(middleware.CurrentPrincipal(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.communityService.DeleteCommunity(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"deleted": true}))
}
