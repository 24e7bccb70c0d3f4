// Package auth validates bearer tokens on collection routes. The token
// subject is the user id; every collection mutation is checked against
// it, replacing the old implicit current-user assumption. With no secret
// configured the middleware is a no-op and requests stay anonymous.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"beerledger.io/BeerLedger/configs"
)

const userIDKey = "auth.userID"

var (
	ErrNoToken      = errors.New("authorization header not found")
	ErrInvalidToken = errors.New("invalid token")
)

type Manager struct {
	secret string
	logger *zap.Logger
}

func NewManager(conf *configs.Config, logger *zap.Logger) *Manager {
	return &Manager{secret: conf.Auth.SecretKey, logger: logger}
}

func (a *Manager) Enabled() bool {
	return a.secret != ""
}

func (a *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.Enabled() {
			c.Next()

			return
		}

		userID, err := a.userFromRequest(c.Request.Header)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID reports the authenticated user, or ok=false when the request
// went through with auth disabled.
func UserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}

	userID, ok := value.(int64)

	return userID, ok
}

func (a *Manager) userFromRequest(header http.Header) (int64, error) {
	accessToken, err := a.extractTokenFromHeader(header)
	if err != nil {
		return 0, err
	}

	keyFunc := func(token *jwt.Token) (interface{}, error) {
		_, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %v", ErrInvalidToken, token.Header["alg"])
		}

		return []byte(a.secret), nil
	}

	token, err := jwt.ParseWithClaims(accessToken, jwt.MapClaims{}, keyFunc)
	if err != nil {
		a.logger.Error("error parsing token", zap.Error(err))

		return 0, ErrInvalidToken
	}

	claims, found := token.Claims.(jwt.MapClaims)
	if !found || !token.Valid {
		a.logger.Error("invalid token", zap.Any("claims", claims))

		return 0, ErrInvalidToken
	}

	subject, found := claims["sub"].(string)
	if !found {
		a.logger.Error("unable to get user id from token", zap.Any("claims", claims))

		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}

	return userID, nil
}

func (a *Manager) extractTokenFromHeader(header http.Header) (string, error) {
	authorization := header.Get("Authorization")
	if len(authorization) == 0 {
		return "", ErrNoToken
	}

	prefix := "Bearer "
	if !strings.HasPrefix(authorization, prefix) {
		prefix = "bearer "
	}

	token, found := strings.CutPrefix(authorization, prefix)
	if !found {
		return "", fmt.Errorf("%w: authorization format must be Bearer {token}", ErrInvalidToken)
	}

	return token, nil
}
