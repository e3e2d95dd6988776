package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	commentDelivery "github.com/pravaah/backend/internal/domain/comments/delivery"
	likeDelivery "github.com/pravaah/backend/internal/domain/likes/delivery"
	playlistDelivery "github.com/pravaah/backend/internal/domain/playlists/delivery"
	tweetDelivery "github.com/pravaah/backend/internal/domain/tweets/delivery"
	userDelivery "github.com/pravaah/backend/internal/domain/users/delivery"
	videoDelivery "github.com/pravaah/backend/internal/domain/videos/delivery"
	appMiddleware "github.com/pravaah/backend/pkg/middleware"
	"github.com/pravaah/backend/pkg/response"
)

type routeHandlers struct {
	users     *userDelivery.Handler
	videos    *videoDelivery.Handler
	comments  *commentDelivery.Handler
	tweets    *tweetDelivery.Handler
	likes     *likeDelivery.Handler
	playlists *playlistDelivery.Handler
}

func setupRoutes(e *echo.Echo, h routeHandlers, auth echo.MiddlewareFunc, loginLimiter *appMiddleware.IPRateLimiter, corsOrigin string) {
	// Middleware
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Gzip())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{corsOrigin},
		AllowCredentials: true,
	}))
	e.Use(middleware.Recover())
	e.Use(appMiddleware.RequestID())

	// Custom error handler
	e.HTTPErrorHandler = response.CustomErrorHandler

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status": "ok",
		})
	})

	// API v1 routes
	v1 := e.Group("/api/v1")

	// User routes
	users := v1.Group("/users")
	{
		users.POST("/register", h.users.Register)
		users.POST("/login", h.users.Login, loginLimiter.Middleware())
		users.POST("/accessTokenGenerator", h.users.RefreshToken)
		users.POST("/forgotPasswordSendReq", h.users.ForgotPasswordRequest, loginLimiter.Middleware())
		users.POST("/forgotPasswordTokenVerify", h.users.ForgotPasswordVerify)
		users.GET("/getProfile/:userName", h.users.GetProfile)

		// Protected routes (require access token)
		users.POST("/logout", h.users.Logout, auth)
		users.POST("/changePassword", h.users.ChangePassword, auth)
		users.GET("/getCurrentUser", h.users.GetCurrentUser, auth)
		users.GET("/getWatchHistory", h.users.GetWatchHistory, auth)
		users.PATCH("/updateAccountDetails", h.users.UpdateAccountDetails, auth)
		users.PATCH("/updateProfilePicture", h.users.UpdateProfilePicture, auth)
		users.POST("/subscribeUser", h.users.SubscribeUser, auth)
	}

	// Video routes
	video := v1.Group("/video")
	{
		video.GET("/getAllVideos", h.videos.GetAllVideos)
		video.POST("/publishAVideo", h.videos.PublishVideo, auth)
		video.GET("/getVideo/:videoId", h.videos.GetVideo, auth)
		video.PATCH("/updateVideo/:videoId", h.videos.UpdateVideo, auth)
		video.PATCH("/togglePublishStatus/:videoId", h.videos.TogglePublishStatus, auth)
		video.DELETE("/deleteVideo/:videoId", h.videos.DeleteVideo, auth)

		// Comments live under their video
		video.GET("/:videoId/comments", h.comments.GetVideoComments)
		video.POST("/:videoId/comments", h.comments.AddComment, auth)
	}

	// Comment routes (mutations address the comment directly)
	comments := v1.Group("/comments")
	{
		comments.PATCH("/:commentId", h.comments.UpdateComment, auth)
		comments.DELETE("/:commentId", h.comments.DeleteComment, auth)
	}

	// Tweet routes
	tweets := v1.Group("/tweets", auth)
	{
		tweets.POST("", h.tweets.CreateTweet)
		tweets.GET("", h.tweets.GetUserTweets)
		tweets.PATCH("/:tweetId", h.tweets.UpdateTweet)
		tweets.DELETE("/:tweetId", h.tweets.DeleteTweet)
	}

	// Like routes
	likes := v1.Group("/likes", auth)
	{
		likes.POST("/video/:videoId", h.likes.ToggleVideoLike)
		likes.POST("/comment/:commentId", h.likes.ToggleCommentLike)
		likes.POST("/tweet/:tweetId", h.likes.ToggleTweetLike)
		likes.GET("/videos", h.likes.GetLikedVideos)
	}

	// Playlist routes
	playlists := v1.Group("/playlists")
	{
		playlists.GET("/:playlistId", h.playlists.GetPlaylist)
		playlists.POST("", h.playlists.CreatePlaylist, auth)
		playlists.GET("", h.playlists.GetUserPlaylists, auth)
		playlists.PATCH("/:playlistId", h.playlists.UpdatePlaylist, auth)
		playlists.DELETE("/:playlistId", h.playlists.DeletePlaylist, auth)
		playlists.PATCH("/:playlistId/videos/:videoId", h.playlists.AddVideoToPlaylist, auth)
		playlists.DELETE("/:playlistId/videos/:videoId", h.playlists.RemoveVideoFromPlaylist, auth)
	}

	// Channel dashboard
	v1.GET("/dashboard/stats", h.videos.GetChannelStats, auth)
}
