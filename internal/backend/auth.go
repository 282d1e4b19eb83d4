package backend

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/tartampluch/go-gymtrack/internal/config"
)

// issueToken signs an HS256 token for userID valid for ttl.
func issueToken(secret []byte, userID, username string, now time.Time, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		config.ClaimSubject:  userID,
		config.ClaimName:     username,
		config.ClaimIssuedAt: now.Unix(),
		config.ClaimExpiry:   now.Add(ttl).Unix(),
	})
	return token.SignedString(secret)
}

// parseToken validates tokenStr and returns its subject.
func parseToken(secret []byte, tokenStr string) (string, bool) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		// Pin the algorithm.
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || token == nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}

// RequireAuth checks "Authorization: Bearer <token>" and stores the subject
// in the gin context under config.CtxUserIDKey.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader(config.HeaderAuthorization)
		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], config.AuthScheme) || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(config.CodeUnauthenticated, config.ErrAuthHeader))
			return
		}

		sub, ok := parseToken(secret, strings.TrimSpace(parts[1]))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(config.CodeUnauthenticated, config.ErrTokenInvalid))
			return
		}

		c.Set(config.CtxUserIDKey, sub)
		c.Next()
	}
}

// callerID returns the authenticated user of the request.
func callerID(c *gin.Context) string {
	return c.GetString(config.CtxUserIDKey)
}

// requireSelf aborts unless the path :id is the caller.
func requireSelf(c *gin.Context) (string, bool) {
	id := c.Param(config.ParamID)
	if id != callerID(c) {
		err := ErrForbidden(config.ErrForbiddenUser)
		c.AbortWithStatusJSON(ToHTTPStatus(err), errorFromErr(err))
		return "", false
	}
	return id, true
}
