package main

import (
	"context"

	"app/internal/cart"
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/platform/logger"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	// .envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal("postgres connect failed", "error", err)
	}
	if err := gormDB.AutoMigrate(&model.Product{}); err != nil {
		log.Fatal("migrate failed", "error", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		log.Fatal("redis connect failed", "error", err)
	}

	//Repository生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	snapshotRepo := infraRepo.NewSnapshotRedisRepository(redisClient)

	//初期カタログ投入（空の時だけ）
	if err := db.SeedProducts(context.Background(), productRepo); err != nil {
		log.Fatal("seed failed", "error", err)
	}

	//カートはセッションごとにStoreを1つ。Managerから配る。
	carts := cart.NewManager(snapshotRepo, log)

	//Usecase生成
	catalogUC := usecase.NewCatalogUsecase(productRepo)
	cartUC := usecase.NewCartUsecase(carts, productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(carts, log)
	adminUC := usecase.NewAdminUsecase(productRepo, cfg.AdminPasswordHash, cfg.JWTSecret)

	//Handler生成
	productH := handler.NewProductHandler(catalogUC)
	cartH := handler.NewCartHandler(cartUC)
	checkoutH := handler.NewCheckoutHandler(checkoutUC)
	adminH := handler.NewAdminHandler(adminUC)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	log.Info("starting server", "addr", addr, "env", cfg.GoEnv)
	if err := server.Start(addr, cfg, productH, cartH, checkoutH, adminH); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
