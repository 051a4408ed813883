package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/wirefeed/wirefeed/app_setting"
	"github.com/wirefeed/wirefeed/auth"
	"github.com/wirefeed/wirefeed/model"
	"github.com/wirefeed/wirefeed/server/middlewares"
	"github.com/wirefeed/wirefeed/service"
	. "github.com/wirefeed/wirefeed/utils/log"
	"gorm.io/gorm"
)

// Handlers holds the services behind the JSON API. One instance serves
// every request; all per-request state lives on the gin context.
type Handlers struct {
	Users   *service.UserService
	Posts   *service.PostService
	Graph   *service.SocialGraphService
	Feeds   *service.FeedService
	Setting app_setting.ServerAppSetting
}

func NewHandlers(db *gorm.DB, setting app_setting.ServerAppSetting) *Handlers {
	return &Handlers{
		Users:   &service.UserService{DB: db},
		Posts:   &service.PostService{DB: db},
		Graph:   &service.SocialGraphService{DB: db},
		Feeds:   &service.FeedService{DB: db},
		Setting: setting,
	}
}

// actorId returns the authenticated user's id, or 0 for anonymous
// requests that passed through OptionalAuth.
func actorId(c *gin.Context) uint {
	if v, ok := c.Get(middlewares.ContextUserId); ok {
		return v.(uint)
	}
	return 0
}

// pageParam parses the optional 1-based "page" query parameter. A
// missing or malformed value falls back to page 1; out of range values
// are clamped later by the feed service.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return page
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		c.Status(http.StatusForbidden)
	case errors.Is(err, service.ErrSelfFollow):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself."})
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "conflicting update, please retry"})
	default:
		Log.Error("unhandled service error: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// postView renders a post for a detail response. Feed pages build their
// views in the feed service instead, where liked flags are batched.
func postView(post *model.Post) *model.PostView {
	return &model.PostView{
		Id:        post.Id,
		User:      post.User.Username,
		Content:   post.Content,
		Timestamp: post.Timestamp.Format(model.TimestampFormat),
		Likes:     post.LikeCount,
	}
}

func (h *Handlers) tokenTTL() time.Duration {
	return time.Duration(h.Setting.TOKEN_EXPIRE_HOUR) * time.Hour
}

type registerRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Confirmation string `json:"confirmation"`
}

// Register creates an account and signs the new user in by returning an
// access token.
func (h *Handlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON."})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password cannot be empty."})
		return
	}
	if req.Password != req.Confirmation {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords must match."})
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	user, err := h.Users.CreateUser(req.Username, req.Email, passwordHash)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	token, err := auth.MintToken(middlewares.TokenSecret(), user, h.tokenTTL())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "registered",
		"username": user.Username,
		"token":    token,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a fresh access token.
func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON."})
		return
	}

	user, err := h.Users.GetByUsername(req.Username)
	if err != nil || !user.IsActive || !auth.CheckPassword(user.PasswordHash, req.Password) {
		// Same response for unknown user and wrong password.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials."})
		return
	}

	token, err := auth.MintToken(middlewares.TokenSecret(), user, h.tokenTTL())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "logged in",
		"username": user.Username,
		"token":    token,
	})
}

// Logout exists for API symmetry. Tokens are stateless, the client
// simply drops its copy.
func (h *Handlers) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

type postRequest struct {
	Content string `json:"content"`
}

// CreatePost handles POST /post.
func (h *Handlers) CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON."})
		return
	}

	post, err := h.Posts.CreatePost(actorId(c), req.Content)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "created",
		"post":    postView(post),
	})
}

// postIdParam parses the {id} path segment. A non-numeric id behaves
// like a missing post.
func postIdParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return uint(id), true
}

// PostDetail handles GET /post/{id}.
func (h *Handlers) PostDetail(c *gin.Context) {
	postId, ok := postIdParam(c)
	if !ok {
		return
	}

	post, err := h.Posts.GetPost(postId)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, postView(post))
}

// UpdatePost handles PUT /post/{id}, owner only.
func (h *Handlers) UpdatePost(c *gin.Context) {
	postId, ok := postIdParam(c)
	if !ok {
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON."})
		return
	}

	post, err := h.Posts.EditPost(postId, actorId(c), req.Content)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "updated",
		"content": post.Content,
	})
}

// ToggleLike handles POST /post/{id}/like. A toggle that loses a race
// on the uniqueness constraint is retried once as a fresh toggle.
func (h *Handlers) ToggleLike(c *gin.Context) {
	postId, ok := postIdParam(c)
	if !ok {
		return
	}

	result, err := h.Graph.ToggleLike(actorId(c), postId)
	if errors.Is(err, service.ErrConflict) {
		result, err = h.Graph.ToggleLike(actorId(c), postId)
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ToggleFollow handles POST /profile/{username}/follow, with the same
// single retry on a lost uniqueness race as ToggleLike.
func (h *Handlers) ToggleFollow(c *gin.Context) {
	username := c.Param("username")

	result, err := h.Graph.ToggleFollow(actorId(c), username)
	if errors.Is(err, service.ErrConflict) {
		result, err = h.Graph.ToggleFollow(actorId(c), username)
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GlobalFeedPage handles GET / and GET /all.
func (h *Handlers) GlobalFeedPage(c *gin.Context) {
	feedPage, err := h.Feeds.GlobalFeed(actorId(c), pageParam(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedPage)
}

// FollowingFeedPage handles GET /following, auth required.
func (h *Handlers) FollowingFeedPage(c *gin.Context) {
	feedPage, err := h.Feeds.FollowingFeed(actorId(c), pageParam(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedPage)
}

// Profile handles GET /profile/{username}: follower counts, the
// is_following flag for a known viewer, and one page of the user's
// posts.
func (h *Handlers) Profile(c *gin.Context) {
	username := c.Param("username")

	target, err := h.Users.GetByUsername(username)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	viewer := actorId(c)
	posts, err := h.Feeds.UserFeed(username, viewer, pageParam(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	followers, err := h.Graph.FollowersCount(target.Id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	following, err := h.Graph.FollowingCount(target.Id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	isFollowing := false
	if viewer != 0 && viewer != target.Id {
		isFollowing, err = h.Graph.IsFollowing(viewer, target.Id)
		if err != nil {
			writeServiceError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, &model.Profile{
		Username:       target.Username,
		FollowersCount: followers,
		FollowingCount: following,
		IsFollowing:    isFollowing,
		Posts:          posts,
	})
}

// Ping is a trivial health check.
func (h *Handlers) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
