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

// ClassroomController handles classroom related operations
type ClassroomController struct {
	classroomService services.ClassroomService
}

// NewClassroomController creates a new ClassroomController
func NewClassroomController(classroomService services.ClassroomService) *ClassroomController {
	return &ClassroomController{classroomService: classroomService}
}

// GetAllClassrooms handles listing classrooms with pagination, optionally
// filtered by a search term, topic or instructor.
func (c *ClassroomController) GetAllClassrooms(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)
	skip, limit := helpers.PageWindow(page, pageSize)

	var err error
	var classrooms interface{}

	switch {
	case ctx.Query("search") != "":
		classrooms, err = c.classroomService.SearchClassrooms(ctx, ctx.Query("search"), skip, limit)
	case ctx.Query("topic") != "":
		classrooms, err = c.classroomService.GetClassroomsByTopic(ctx, ctx.Query("topic"), skip, limit)
	case ctx.Query("instructorId") != "":
		classrooms, err = c.classroomService.GetClassroomsByInstructor(ctx, ctx.Query("instructorId"), skip, limit)
	default:
		classrooms, err = c.classroomService.GetAllClassrooms(ctx, skip, limit)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPaginatedResponse(classrooms, page, pageSize)))
}

// GetMyClassrooms handles listing the classrooms owned by the caller.
func (c *ClassroomController) GetMyClassrooms(ctx *gin.Context) {
	principal := middleware.CurrentPrincipal(ctx)
	if err := auth.RequireAuthenticated(principal); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	skip, limit := helpers.PageWindow(page, pageSize)

	classrooms, err := c.classroomService.GetClassroomsByInstructor(ctx, principal.ID, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPaginatedResponse(classrooms, page, pageSize)))
}

// GetClassroomByID handles retrieving a single classroom.
func (c *ClassroomController) GetClassroomByID(ctx *gin.Context) {
	classroom, err := c.classroomService.GetClassroomByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if classroom == nil {
		middleware.HandleAPIError(ctx, apperrors.NewNotFoundError("classroom not found"))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(classroom))
}

// CreateClassroom handles classroom creation. Instructors and admins only.
func (c *ClassroomController) CreateClassroom(ctx *gin.Context) {
	principal := middleware.CurrentPrincipal(ctx)
	if err := auth.CanCreateClassroom(principal); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateClassroomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	classroom, err := c.classroomService.CreateClassroom(ctx, principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(classroom))
}

// UpdateClassroom handles partial classroom updates. Owner or admin only.
func (c *ClassroomController) UpdateClassroom(ctx *gin.Context) {
	classroom, ok := c.authorizeClassroomWrite(ctx)
	if !ok {
		return
	}

	var req dto.UpdateClassroomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	updated, err := c.classroomService.UpdateClassroom(ctx, classroom.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(updated))
}

// UpdateProgress handles setting the progress percentage. Owner or admin only.
func (c *ClassroomController) UpdateProgress(ctx *gin.Context) {
	classroom, ok := c.authorizeClassroomWrite(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	updated, err := c.classroomService.UpdateProgress(ctx, classroom.ID, *req.Progress)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(updated))
}

// UpdateAssignments handles setting the assignment count. Owner or admin only.
func (c *ClassroomController) UpdateAssignments(ctx *gin.Context) {
	classroom, ok := c.authorizeClassroomWrite(ctx)
	if !ok {
		return
	}

	var req dto.UpdateAssignmentsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	updated, err := c.classroomService.UpdateAssignments(ctx, classroom.ID, *req.Assignments)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(updated))
}

// UpdateNextClass handles setting the next class label. Owner or admin only.
func (c *ClassroomController) UpdateNextClass(ctx *gin.Context) {
	classroom, ok := c.authorizeClassroomWrite(ctx)
	if !ok {
		return
	}

	var req dto.UpdateNextClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	updated, err := c.classroomService.UpdateNextClass(ctx, classroom.ID, req.NextClass)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(updated))
}

// DeleteClassroom handles classroom deletion. Owner or admin only.
func (c *ClassroomController) DeleteClassroom(ctx *gin.Context) {
	classroom, ok := c.authorizeClassroomWrite(ctx)
	if !ok {
		return
	}

	if err := c.classroomService.DeleteClassroom(ctx, classroom.ID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"deleted": true}))
}

// authorizeClassroomWrite loads the target classroom and checks the write
// policy against the caller. It writes the error response itself and reports
// success through the bool.
func (c *ClassroomController) authorizeClassroomWrite(ctx *gin.Context) (*models.Classroom, bool) {
	classroom, err := c.classroomService.GetClassroomByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	if classroom == nil {
		middleware.HandleAPIError(ctx, apperrors.NewNotFoundError("classroom not found"))
		return nil, false
	}

	if err := auth.CanModifyClassroom(middleware.CurrentPrincipal(ctx), classroom); err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	return classroom, true
}
