package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/api-sage/splitpay-ledger/src/internal/adapter/http/controller"
	"github.com/api-sage/splitpay-ledger/src/internal/adapter/http/middleware"
	"github.com/api-sage/splitpay-ledger/src/internal/adapter/http/router"
	"github.com/api-sage/splitpay-ledger/src/internal/adapter/repository/memory"
	"github.com/api-sage/splitpay-ledger/src/internal/adapter/repository/postgres"
	"github.com/api-sage/splitpay-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/splitpay-ledger/src/internal/config"
	"github.com/api-sage/splitpay-ledger/src/internal/logger"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rateRepo, cleanup, err := buildRateRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	app := newApplication(rateRepo)

	if err := app.rateService.LoadRates(ctx); err != nil {
		return fmt.Errorf("load exchange rates: %w", err)
	}

	mux := router.New(
		controller.NewRateController(app.rateService),
		controller.NewUserController(app.userService),
		controller.NewAccountController(app.accountService),
		controller.NewTransferController(app.transferService),
		controller.NewSplitController(app.settlementService),
		middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey),
	)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("http server listening", logger.Fields{
			"addr": cfg.ListenAddr,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

func buildRateRepository(ctx context.Context, cfg config.Config) (repo_interfaces.RateRepository, func(), error) {
	if cfg.RatesSource == "memory" {
		return memory.NewRateRepository(nil), func() {}, nil
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}

	repo := postgres.NewRateRepository(db)
	if err := repo.EnsureDefaultRates(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ensure default rates: %w", err)
	}

	return repo, func() { _ = db.Close() }, nil
}
