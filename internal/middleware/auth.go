package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"ClubHub/internal/permission"
	"ClubHub/internal/pkg"
	"ClubHub/internal/repository/redis"

	"github.com/gin-gonic/gin"
)

const ContextActorKey = "actor"

// TokenStore is the read side of the session store.
type TokenStore interface {
	Get(ctx context.Context, userID uint64) (string, error)
	Extend(ctx context.Context, userID uint64) error
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"errors": []string{msg}, "messages": []string{}, "data": nil})
}

// Auth accepts a bearer access token only if it is the user's live session
// token, then stores the caller as a permission.Actor in the context.
func Auth(tokens *pkg.TokenIssuer, sessions TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "Please log in.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abort(c, http.StatusUnauthorized, "Invalid authorization header.")
			return
		}
		tokenStr := parts[1]

		claims, err := tokens.ParseAccess(tokenStr)
		if err != nil {
			abort(c, http.StatusUnauthorized, "Your session has expired. Please log in again.")
			return
		}

		live, err := sessions.Get(c.Request.Context(), claims.UserID)
		switch {
		case errors.Is(err, redis.ErrTokenNotFound):
			abort(c, http.StatusUnauthorized, "Your session has ended. Please log in again.")
			return
		case err != nil:
			slog.Error("auth: session lookup failed", "user_id", claims.UserID, "error", err)
			abort(c, http.StatusInternalServerError, "Something went wrong, please try again later.")
			return
		}
		if live != tokenStr {
			abort(c, http.StatusUnauthorized, "Your account has been signed in elsewhere.")
			return
		}

		if err := sessions.Extend(c.Request.Context(), claims.UserID); err != nil {
			slog.Warn("auth: session extend failed", "user_id", claims.UserID, "error", err)
		}

		c.Set(ContextActorKey, permission.Actor{
			ID:       claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		})
		c.Next()
	}
}

// ActorFrom returns the actor stored by Auth.
func ActorFrom(c *gin.Context) (permission.Actor, bool) {
	v, ok := c.Get(ContextActorKey)
	if !ok {
		return permission.Actor{}, false
	}
	actor, ok := v.(permission.Actor)
	return actor, ok
}
