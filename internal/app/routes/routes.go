package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/backend/internal/app/controllers"
	"github.com/edusphere/backend/internal/middleware"
	"github.com/edusphere/backend/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	classroomController *controllers.ClassroomController,
	communityController *controllers.CommunityController,
	postController *controllers.PostController,
	chatController *controllers.ChatController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group; every route sees the resolved principal
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.Principal())

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Classroom routes
	classrooms := v1.Group("/classrooms")
	{
		classrooms.GET("", classroomController.GetAllClassrooms)
		classrooms.GET("/mine", classroomController.GetMyClassrooms)
		classrooms.GET("/:id", classroomController.GetClassroomByID)
		classrooms.POST("", classroomController.CreateClassroom)
		classrooms.PUT("/:id", classroomController.UpdateClassroom)
		classrooms.PATCH("/:id/progress", classroomController.UpdateProgress)
		classrooms.PATCH("/:id/assignments", classroomController.UpdateAssignments)
		classrooms.PATCH("/:id/next-class", classroomController.UpdateNextClass)
		classrooms.DELETE("/:id", classroomController.DeleteClassroom)

		classrooms.GET("/:id/messages", chatController.GetClassroomMessages)
		classrooms.GET("/:id/chat/ws", wsHandler.HandleClassroom)
	}

	// Community routes
	communities := v1.Group("/communities")
	{
		communities.GET("", communityController.GetAllCommunities)
		communities.GET("/:id", communityController.GetCommunityByID)
		communities.POST("", communityController.CreateCommunity)
		communities.PUT("/:id", communityController.UpdateCommunity)
		communities.PATCH("/:id/members", communityController.UpdateMembers)
		communities.POST("/:id/topics", communityController.AddTopic)
		communities.DELETE("/:id/topics/:topic", communityController.RemoveTopic)
		communities.DELETE("/:id", communityController.DeleteCommunity)

		communities.GET("/:id/messages", chatController.GetCommunityMessages)
		communities.GET("/:id/chat/ws", wsHandler.HandleCommunity)
	}

	// Post routes
	posts := v1.Group("/posts")
	{
		posts.GET("", postController.GetAllPosts)
		posts.GET("/mine", postController.GetMyPosts)
		posts.GET("/:id", postController.GetPostByID)
		posts.POST("", postController.CreatePost)
		posts.PUT("/:id", postController.UpdatePost)
		posts.POST("/:id/like", postController.LikePost)
		posts.POST("/:id/unlike", postController.UnlikePost)
		posts.POST("/:id/comments", postController.AddComment)
		posts.DELETE("/:id", postController.DeletePost)
	}

	// Chat routes
	chat := v1.Group("/chat")
	{
		chat.POST("/messages", chatController.SendMessage)
		chat.GET("/ws", wsHandler.HandleGlobal)
	}
}
