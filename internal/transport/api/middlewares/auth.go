package middlewares

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/groph-vending/internal/domain"
	"github.com/fsdevblog/groph-vending/internal/transport/api/tokens"
)

// CurrentUserKey ключ gin-контекста, под которым лежит аутентифицированный *domain.User.
const CurrentUserKey = "currentUser"

//go:generate mockgen -source=auth.go -destination=mocks/mocks.go -package=mocks

// IdentityResolver часть сервиса юзеров, нужная для резолва личности по кредам из запроса.
type IdentityResolver interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetByID(ctx context.Context, userID string) (*domain.User, error)
}

// Identity резолвит личность запроса из заголовка Authorization и кладет юзера в контекст.
// Поддерживаются обе схемы: Basic (юзернейм/пароль) и Bearer (jwt, выданный логином).
// Запрос без заголовка проходит дальше анонимным - отказ отдает ролевой гейт Authorize.
// Предъявленные, но невалидные креды - это всегда 401.
func Identity(users IdentityResolver, jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		var user *domain.User
		var err error

		switch {
		case strings.HasPrefix(header, "Basic "):
			user, err = resolveBasic(c, users, strings.TrimPrefix(header, "Basic "))
		case strings.HasPrefix(header, "Bearer "):
			user, err = resolveBearer(c, users, strings.TrimPrefix(header, "Bearer "), jwtSecret)
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if err != nil {
			if domain.IsBusiness(err) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			_ = c.AbortWithError(http.StatusUnauthorized, err).SetType(gin.ErrorTypePrivate)
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// Authorize ролевой гейт. Без личности в контексте - 401, личность без любой из
// требуемых ролей - 403. Пустой набор ролей означает "достаточно аутентификации".
func Authorize(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		for _, role := range roles {
			if !user.HasRole(role) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
				return
			}
		}
		c.Next()
	}
}

// CurrentUser достает аутентифицированного юзера из gin-контекста.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	value, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*domain.User)
	return user, ok
}

func resolveBasic(c *gin.Context, users IdentityResolver, encoded string) (*domain.User, error) {
	raw, decodeErr := base64.StdEncoding.DecodeString(encoded)
	if decodeErr != nil {
		return nil, domain.ErrAuthFailed
	}
	username, password, found := strings.Cut(string(raw), ":")
	if !found {
		return nil, domain.ErrAuthFailed
	}
	return users.Authenticate(c, username, password) //nolint:wrapcheck
}

func resolveBearer(c *gin.Context, users IdentityResolver, tokenStr string, jwtSecret []byte) (*domain.User, error) {
	claims, err := tokens.ValidateUserJWT(tokenStr, jwtSecret)
	if err != nil {
		return nil, domain.ErrAuthFailed
	}
	return users.GetByID(c, claims.UserID) //nolint:wrapcheck
}
