package main

import (
	"context"
	"os"

	auctionapp "github.com/dkoroteev/yeticave/internal/auction/application"
	auctionpg "github.com/dkoroteev/yeticave/internal/auction/infra/repository/postgres"
	"github.com/dkoroteev/yeticave/internal/shared/db"
	"github.com/dkoroteev/yeticave/internal/shared/db/migrations"
	"github.com/dkoroteev/yeticave/internal/shared/httpserver"
	"github.com/dkoroteev/yeticave/internal/shared/logger"
	userapp "github.com/dkoroteev/yeticave/internal/user/application"
	userpg "github.com/dkoroteev/yeticave/internal/user/infra/repository/postgres"
	"go.uber.org/zap"
)

func main() {
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting YetiCave server...")

	log.Info("Running database migrations...")
	if err := migrations.RunMigrations(); err != nil {
		log.Fatal("Database migration failed", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")

	ctx := context.Background()
	pool, err := db.GetPostgresDBPool(ctx)
	if err != nil {
		log.Fatal("Database connection failed", zap.Error(err))
	}
	defer pool.Close()

	lotRepo := auctionpg.NewLotRepository(pool)
	bidRepo := auctionpg.NewBidRepository(pool)
	accountRepo := userpg.NewAccountRepository(pool)

	placeBidUC := auctionapp.NewPlaceBidUseCase(lotRepo, bidRepo, pool)
	lotPageUC := auctionapp.NewGetLotPageUseCase(lotRepo, bidRepo)
	auctionSvc := auctionapp.NewAuctionService(lotRepo, bidRepo, placeBidUC, lotPageUC)
	registerUC := userapp.NewRegisterAccountUseCase(accountRepo)

	server := httpserver.NewServer(httpserver.Deps{
		Auction:  auctionSvc,
		Register: registerUC,
		Accounts: accountRepo,
	})

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":9000"
	}
	if err := server.Start(addr); err != nil {
		log.Fatal("HTTP server failed", zap.Error(err))
	}
}
