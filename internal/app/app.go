package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	// драйвер применения миграций postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// драйвер чтения миграций из файлов (*.sql в нашем случае).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive

	"github.com/fsdevblog/groph-vending/internal/config"
	"github.com/fsdevblog/groph-vending/internal/domain"
	"github.com/fsdevblog/groph-vending/internal/service"
	"github.com/fsdevblog/groph-vending/internal/storage"
	"github.com/fsdevblog/groph-vending/internal/storage/memstore"
	"github.com/fsdevblog/groph-vending/internal/storage/pgstore"
	"github.com/fsdevblog/groph-vending/internal/transport/api"
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof("Starting app with config: %+v", a.Config)

	users, products, closeStores, storesErr := a.initStores(notifyCtx)
	if storesErr != nil {
		return fmt.Errorf("app run: %s", storesErr.Error())
	}
	defer closeStores()

	services := service.Factory(users, products)

	router := api.New(api.RouterArgs{
		Logger:         a.Logger,
		UserService:    services.UserService,
		ProductService: services.ProductService,
		VendingService: services.VendingService,
		JWTSecretKey:   []byte(a.Config.JWTUserSecret),
	})

	errChan := make(chan error, 1)

	go func() {
		if runErr := router.Run(a.Config.RunAddress); runErr != nil {
			errChan <- runErr
		}
	}()

	select {
	case <-notifyCtx.Done():
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

// initStores выбирает бекенд хранилища на этапе сборки: пустой DSN - хранилище в памяти,
// иначе postgres с миграциями.
func (a *App) initStores(ctx context.Context) (
	storage.Store[domain.User],
	storage.Store[domain.Product],
	func(),
	error,
) {
	if a.Config.DatabaseDSN == "" {
		a.Logger.Warn("database DSN is not set, falling back to in-memory storage")
		return memstore.New[domain.User](), memstore.New[domain.Product](), func() {}, nil
	}

	conn, connErr := pgstore.Connect(ctx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return nil, nil, nil, connErr
	}
	return pgstore.NewUserStore(conn), pgstore.NewProductStore(conn), conn.Close, nil
}
