package middlewares

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wirefeed/wirefeed/auth"
	. "github.com/wirefeed/wirefeed/utils/log"
)

const (
	// ContextUserId and ContextUsername are set on the gin context by the
	// auth middlewares once a token has been verified.
	ContextUserId   = "userId"
	ContextUsername = "username"

	requestIdHeader = "X-Request-Id"
)

var (
	// tokenSecret signs and verifies access tokens. Before any middleware
	// is used, make sure it's initialized correctly via Setup.
	tokenSecret []byte
)

// Setup initializes all package scoped variables that are needed to
// perform middleware functionalities. This function must be called
// before any middleware is used.
func Setup() {
	secret := os.Getenv("TOKEN_SECRET")
	if secret == "" {
		// Abort directly if the secret isn't present, which is crucial for
		// server side authorization.
		Log.Fatal("TOKEN_SECRET is not set")
	}
	tokenSecret = []byte(secret)
}

// TokenSecret exposes the configured secret to the login/register
// handlers that mint tokens.
func TokenSecret() []byte {
	return tokenSecret
}

// bearerToken extracts the access token from the Authorization header,
// falling back to the "token" query parameter.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}

// Auth requires a valid access token. It verifies the token and stores
// the actor's id and username in the request context. It returns 401 on
// token not provided or token is invalid (wrong token or expired).
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(tokenSecret, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(ContextUserId, claims.UserId)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

// OptionalAuth resolves the actor when a valid token is present but
// lets anonymous requests through. Feed pages use it to decide whether
// to compute per-viewer liked flags.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token != "" {
			if claims, err := auth.ParseToken(tokenSecret, token); err == nil {
				c.Set(ContextUserId, claims.UserId)
				c.Set(ContextUsername, claims.Username)
			}
		}
		c.Next()
	}
}

// RequestId tags every request with a uuid, echoed in the response
// header and attached to request scoped logging.
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader(requestIdHeader)
		if requestId == "" {
			requestId = uuid.New().String()
		}
		c.Header(requestIdHeader, requestId)
		c.Set("requestId", requestId)
		c.Next()

		Log.WithField("request_id", requestId).
			Debug(c.Request.Method, " ", c.Request.URL.Path, " ", c.Writer.Status())
	}
}
