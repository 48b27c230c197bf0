package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopd/internal/auth"
	"shopd/internal/config"
	"shopd/internal/database"
	httpapi "shopd/internal/http"
	"shopd/internal/logger"
	"shopd/internal/repository"
	"shopd/internal/service"
	"shopd/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "shopd")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.NewPostgres(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Cache is optional; without Redis the access layer resolves tenancy
	// from the database on every check.
	var kv store.KV
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		kv = store.NewRedisKV(redisClient)
		log.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	companiesRepo := repository.NewPostgresCompaniesRepository(db)
	storesRepo := repository.NewPostgresStoresRepository(db)
	usersRepo := repository.NewPostgresUsersRepository(db)
	categoriesRepo := repository.NewPostgresCategoriesRepository(db)
	productsRepo := repository.NewPostgresProductsRepository(db)
	customersRepo := repository.NewPostgresCustomersRepository(db)
	ordersRepo := repository.NewPostgresOrdersRepository(db)
	paymentsRepo := repository.NewPostgresPaymentsRepository(db)
	shipmentsRepo := repository.NewPostgresShipmentsRepository(db)
	rolesRepo := repository.NewPostgresRolesRepository(db)
	userStoresRepo := repository.NewPostgresUserStoresRepository(db)
	seedRepo := repository.NewPostgresSeedRepository(db)
	resolver := repository.NewPostgresTenantResolver(db)

	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)
	access := service.NewAccess(resolver, kv, log)
	authSvc := service.NewAuthService(usersRepo, companiesRepo, tokens, log)
	orderSvc := service.NewOrderService(ordersRepo, productsRepo, log)
	seedSvc := service.NewSeedService(seedRepo, log)

	router := httpapi.NewRouter(tokens, log)
	router.RegisterRoutes(httpapi.Handlers{
		Auth:       httpapi.NewAuthHandler(authSvc, log, cfg.Env),
		Stores:     httpapi.NewStoresHandler(storesRepo, access, log, cfg.Env),
		Categories: httpapi.NewCategoriesHandler(categoriesRepo, access, log, cfg.Env),
		Products:   httpapi.NewProductsHandler(productsRepo, access, log, cfg.Env),
		Customers:  httpapi.NewCustomersHandler(customersRepo, access, log, cfg.Env),
		Orders:     httpapi.NewOrdersHandler(ordersRepo, orderSvc, access, log, cfg.Env),
		Payments:   httpapi.NewPaymentsHandler(paymentsRepo, access, log, cfg.Env),
		Shipments:  httpapi.NewShipmentsHandler(shipmentsRepo, access, log, cfg.Env),
		Roles:      httpapi.NewRolesHandler(rolesRepo, log, cfg.Env),
		UserStores: httpapi.NewUserStoresHandler(userStoresRepo, usersRepo, access, log, cfg.Env),
		Seed:       httpapi.NewSeedHandler(seedSvc, cfg.SeedEnabled, log, cfg.Env),
	})

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			log.Error("server stopped", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Stop(shutdownCtx)
	if redisClient != nil {
		_ = redisClient.Close()
	}
}
