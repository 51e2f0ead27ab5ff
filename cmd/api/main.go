package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jonumhills/townhall-rwa/internal/adapter"
	"github.com/jonumhills/townhall-rwa/internal/api/middleware"
	"github.com/jonumhills/townhall-rwa/internal/api/server"
	"github.com/jonumhills/townhall-rwa/internal/chain"
	"github.com/jonumhills/townhall-rwa/internal/chain/escrow"
	"github.com/jonumhills/townhall-rwa/internal/chain/operatorledger"
	"github.com/jonumhills/townhall-rwa/internal/claims"
	"github.com/jonumhills/townhall-rwa/internal/config"
	"github.com/jonumhills/townhall-rwa/internal/domain"
	"github.com/jonumhills/townhall-rwa/internal/logger"
	"github.com/jonumhills/townhall-rwa/internal/providers/jetstream"
	"github.com/jonumhills/townhall-rwa/internal/providers/parcelregistry"
	"github.com/jonumhills/townhall-rwa/internal/query"
	"github.com/jonumhills/townhall-rwa/internal/settlement"
	"github.com/jonumhills/townhall-rwa/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Townhall RWA API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Run migrations
	if err := store.Migrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to run migrations", zap.Error(err))
	}

	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	httpClient := adapter.NewHTTPClient(cfg.Registry.Timeout)

	// Connect chain backends
	adapters := chain.Adapters{}

	if cfg.Escrow.RPCURL != "" {
		ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Escrow.RPCURL)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to escrow RPC", zap.Error(err))
		}
		defer ethClient.Close()

		operatorKey, err := crypto.HexToECDSA(cfg.Escrow.OperatorPrivateKey)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to parse escrow operator key", zap.Error(err))
		}

		escrowAdapter, err := escrow.New(escrow.Config{
			ContractAddress:     cfg.Escrow.ContractAddress,
			ChainID:             cfg.Escrow.ChainID,
			CallTimeout:         cfg.Escrow.CallTimeout,
			ReceiptPollInterval: cfg.Escrow.ReceiptPollInterval,
		}, ethClient, clock, dataStore, operatorKey)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create escrow adapter", zap.Error(err))
		}
		adapters[domain.ChainTypeEscrow] = escrowAdapter
		logger.InfoCtx(ctx, "Escrow backend connected", zap.String("contract", cfg.Escrow.ContractAddress))
	}

	if cfg.OperatorLedger.TokenServiceURL != "" {
		ledgerHTTP := adapter.NewHTTPClient(cfg.OperatorLedger.CallTimeout)
		adapters[domain.ChainTypeOperatorLedger] = operatorledger.New(operatorledger.Config{
			TokenServiceURL: cfg.OperatorLedger.TokenServiceURL,
			TreasuryAccount: cfg.OperatorLedger.TreasuryAccount,
			CallTimeout:     cfg.OperatorLedger.CallTimeout,
		}, ledgerHTTP, jsonAdapter, clock, dataStore)
		logger.InfoCtx(ctx, "Operator ledger backend connected", zap.String("token_service", cfg.OperatorLedger.TokenServiceURL))
	}

	if len(adapters) == 0 {
		logger.FatalCtx(ctx, "No chain backend configured")
	}

	// Connect event publisher
	publisher, err := jetstream.NewPublisher(jetstream.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
	}, adapter.NewNatsJetStream(), jsonAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err))
	}
	defer publisher.Close()

	// Parse the platform fee; an empty value means the default, "0" means a
	// fee-free deployment.
	feePercent := settlement.DefaultFeePercent
	if cfg.Settlement.FeePercent != "" {
		feePercent, err = decimal.NewFromString(cfg.Settlement.FeePercent)
		if err != nil {
			logger.FatalCtx(ctx, "Invalid settlement fee percent", zap.Error(err), zap.String("fee_percent", cfg.Settlement.FeePercent))
		}
	}

	// Build services
	registry := parcelregistry.NewClient(httpClient, cfg.Registry.URL)
	claimsSvc := claims.NewService(dataStore, registry, adapters, publisher, clock, jsonAdapter)
	engine := settlement.NewEngine(dataStore, adapters, publisher, clock, jsonAdapter, feePercent)
	querySvc := query.NewService(dataStore)

	// Create server config
	serverConfig := server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	// Create and start server
	srv := server.New(serverConfig, claimsSvc, engine, querySvc)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
