package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-vending/internal/domain"
	"github.com/fsdevblog/groph-vending/internal/transport/api/middlewares"
)

const DefaultServiceTimeout = 3 * time.Second

const (
	RouteGroup          = "/api"
	UsersRoute          = "/user"
	UserLoginRoute      = "/user/login"
	UserRoute           = "/user/:id"
	ProductsRoute       = "/product"
	ProductRoute        = "/product/:id"
	VendingDepositRoute = "/vending/deposit"
	VendingBuyRoute     = "/vending/buy"
	VendingResetRoute   = "/vending/reset"
)

type RouterArgs struct {
	Logger         *logrus.Logger
	UserService    UserServicer
	ProductService ProductServicer
	VendingService VendingServicer
	JWTSecretKey   []byte
}

func New(args RouterArgs) *gin.Engine {
	if err := registerValidators(); err != nil {
		panic(err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	usersHandler := NewUsersHandler(args.UserService, args.JWTSecretKey)
	productsHandler := NewProductsHandler(args.ProductService)
	vendingHandler := NewVendingHandler(args.VendingService)

	api := r.Group(RouteGroup)
	api.Use(middlewares.Identity(args.UserService, args.JWTSecretKey))

	// регистрация и логин доступны анонимно.
	api.POST(UsersRoute, usersHandler.Create)
	api.POST(UserLoginRoute, usersHandler.Login)

	api.GET(UsersRoute, middlewares.Authorize(domain.RoleAdmin), usersHandler.Index)
	api.GET(UserRoute, middlewares.Authorize(), usersHandler.Show)
	api.PUT(UserRoute, middlewares.Authorize(), usersHandler.Update)
	api.DELETE(UserRoute, middlewares.Authorize(), usersHandler.Delete)

	api.GET(ProductsRoute, middlewares.Authorize(), productsHandler.Index)
	api.GET(ProductRoute, middlewares.Authorize(), productsHandler.Show)
	api.POST(ProductsRoute, middlewares.Authorize(domain.RoleSeller), productsHandler.Create)
	api.PUT(ProductRoute, middlewares.Authorize(domain.RoleSeller), productsHandler.Update)
	api.DELETE(ProductRoute, middlewares.Authorize(domain.RoleSeller), productsHandler.Delete)

	api.POST(VendingDepositRoute, middlewares.Authorize(domain.RoleBuyer), vendingHandler.Deposit)
	api.POST(VendingBuyRoute, middlewares.Authorize(domain.RoleBuyer), vendingHandler.Buy)
	api.POST(VendingResetRoute, middlewares.Authorize(), vendingHandler.Reset)

	return r
}
