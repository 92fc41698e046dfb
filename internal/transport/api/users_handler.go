package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/groph-vending/internal/domain"
	"github.com/fsdevblog/groph-vending/internal/service"
	"github.com/fsdevblog/groph-vending/internal/transport/api/tokens"
)

const JWTTokenExpire = 1 * time.Hour

type UsersHandler struct {
	userService UserServicer
	jwtSecret   []byte
}

func NewUsersHandler(userService UserServicer, jwtSecret []byte) *UsersHandler {
	return &UsersHandler{
		userService: userService,
		jwtSecret:   jwtSecret,
	}
}

type UserResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Deposit  int      `json:"deposit"`
	Roles    []string `json:"roles"`
}

func newUserResponse(user *domain.User) UserResponse {
	roles := make([]string, len(user.Roles))
	for i, role := range user.Roles {
		roles[i] = string(role)
	}
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Deposit:  user.Deposit,
		Roles:    roles,
	}
}

type UserCreateParams struct {
	ID       string   `binding:"required,min=1,max=64"  json:"id"`
	Username string   `binding:"required,min=1,max=32"  json:"username"`
	Password string   `binding:"required,min=6,max=255" json:"password"`
	Deposit  int      `binding:"gte=0"                  json:"deposit"`
	Roles    []string `binding:"omitempty,dive,role"    json:"roles"`
}

// Create POST /api/user. Регистрация нового юзера, доступна анонимно.
func (h *UsersHandler) Create(c *gin.Context) {
	var params UserCreateParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, createErr := h.userService.Create(ctx, domain.User{
		ID:       params.ID,
		Username: params.Username,
		Password: params.Password,
		Deposit:  params.Deposit,
		Roles:    toRoles(params.Roles),
	})
	if createErr != nil {
		abortWithServiceError(c, createErr)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

type UserLoginParams struct {
	Username string `binding:"required" json:"username"`
	Password string `binding:"required" json:"password"`
}

// Login POST /api/user/login. Аутентификация по паре юзернейм/пароль, в ответе
// заголовок Authorization с bearer-токеном.
func (h *UsersHandler) Login(c *gin.Context) {
	var params UserLoginParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, authErr := h.userService.Authenticate(ctx, params.Username, params.Password)
	if authErr != nil {
		if domain.IsBusiness(authErr) {
			// не раскрываем, чего именно не нашлось - юзера или пароля.
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, authErr).SetType(gin.ErrorTypePrivate)
		return
	}

	token, tokenErr := tokens.GenerateUserJWT(user.ID, JWTTokenExpire, h.jwtSecret)
	if tokenErr != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, tokenErr).SetType(gin.ErrorTypePrivate)
		return
	}

	c.Header("Authorization", "Bearer "+token)
	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}

// Show GET /api/user/:id. Смотреть карточку может сам юзер либо админ.
func (h *UsersHandler) Show(c *gin.Context) {
	actor, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	userID := c.Param("id")

	if !canActOnUser(actor, userID) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// Index GET /api/user. Список юзеров, только для админа (роль гейтится на роутере).
func (h *UsersHandler) Index(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	users, err := h.userService.GetAll(ctx)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]UserResponse, len(users))
	for i := range users {
		response[i] = newUserResponse(&users[i])
	}
	c.JSON(http.StatusOK, response)
}

type UserUpdateParams struct {
	Username string   `binding:"required,min=1,max=32" json:"username"`
	Deposit  int      `binding:"gte=0"                 json:"deposit"`
	Roles    []string `binding:"omitempty,dive,role"   json:"roles"`
}

// Update PUT /api/user/:id. Обновлять запись может сам юзер либо админ. Пароль этим
// эндпоинтом не меняется.
func (h *UsersHandler) Update(c *gin.Context) {
	actor, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	userID := c.Param("id")

	if !canActOnUser(actor, userID) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var params UserUpdateParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, updErr := h.userService.Update(ctx, userID, service.UpdateUserArgs{
		Username: params.Username,
		Deposit:  params.Deposit,
		Roles:    toRoles(params.Roles),
	})
	if updErr != nil {
		abortWithServiceError(c, updErr)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// Delete DELETE /api/user/:id. Удалять запись может сам юзер либо админ.
func (h *UsersHandler) Delete(c *gin.Context) {
	actor, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	userID := c.Param("id")

	if !canActOnUser(actor, userID) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if _, err := h.userService.Delete(ctx, userID); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.AbortWithStatus(http.StatusOK)
}

func toRoles(roles []string) []domain.Role {
	res := make([]domain.Role, len(roles))
	for i, role := range roles {
		res[i] = domain.Role(role)
	}
	return res
}
