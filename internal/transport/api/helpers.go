package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/groph-vending/internal/domain"
	"github.com/fsdevblog/groph-vending/internal/transport/api/middlewares"
)

// abortWithServiceError транслирует бизнес-ошибку в http-статус: Not Authorized - 403,
// остальные бизнес-ошибки - 400 с текстом как есть, всё прочее - приватная 500.
func abortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotAuthorized):
		_ = c.AbortWithError(http.StatusForbidden, err).SetType(gin.ErrorTypePublic)
	case domain.IsBusiness(err):
		_ = c.AbortWithError(http.StatusBadRequest, err).SetType(gin.ErrorTypePublic)
	default:
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
	}
}

// mustCurrentUser возвращает юзера из контекста. Хендлеры за гейтом Authorize всегда
// имеют личность; отсутствие её - сломанная цепочка мидлварей.
func mustCurrentUser(c *gin.Context) (*domain.User, bool) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return user, true
}

// canActOnUser правило контроллера юзеров: действовать над записью может сам юзер либо админ.
func canActOnUser(actor *domain.User, userID string) bool {
	return actor.ID == userID || actor.HasRole(domain.RoleAdmin)
}
