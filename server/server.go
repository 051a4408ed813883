package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/wirefeed/wirefeed/server/middlewares"
)

// NewRouter builds the gin engine with the Logger and Recovery
// middleware already attached, plus CORS and request ids.
func NewRouter(h *Handlers) *gin.Engine {
	router := gin.Default()

	if len(h.Setting.CORS_ALLOW_ORIGINS) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = h.Setting.CORS_ALLOW_ORIGINS
		router.Use(cors.New(corsConfig))
	} else {
		router.Use(cors.Default())
	}
	router.Use(middlewares.RequestId())

	RegisterRoutes(router, h)
	return router
}

// RegisterRoutes wires every endpoint. Auth is required on all post and
// toggle operations; feed pages and profiles resolve the viewer when a
// token is present but stay readable anonymously.
func RegisterRoutes(router *gin.Engine, h *Handlers) {
	authed := middlewares.Auth()
	optional := middlewares.OptionalAuth()

	router.GET("/ping", h.Ping)

	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
	router.POST("/logout", h.Logout)

	// pages
	router.GET("/", optional, h.GlobalFeedPage)
	router.GET("/all", optional, h.GlobalFeedPage)
	router.GET("/following", authed, h.FollowingFeedPage)
	router.GET("/profile/:username", optional, h.Profile)

	// API endpoints
	router.POST("/post", authed, h.CreatePost)
	router.GET("/post/:id", authed, h.PostDetail)
	router.PUT("/post/:id", authed, h.UpdatePost)
	router.POST("/post/:id/like", authed, h.ToggleLike)
	router.POST("/profile/:username/follow", authed, h.ToggleFollow)
}
