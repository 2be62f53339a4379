/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the procurement engine server. Handles
  configuration, dependency injection, and graceful shutdown.

COMMANDS:
  serve   Start the HTTP server (default when no command given)
  seed    Write the demo fixtures into the database and exit

STARTUP SEQUENCE (serve):
  1. Load configuration from the environment
  2. Open the SQLite store and run migrations
  3. Load registers from the store, falling back to fixtures
  4. Wire services, HTTP handler, router and overdue sweeper
  5. Start the server with graceful shutdown

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the sweeper and close the database

ENVIRONMENT:
  PORT       HTTP server port (default: 8080)
  DB_PATH    SQLite database path (default: procure.db)
             Use ":memory:" for an in-memory database
  LOG_LEVEL  zap level: debug, info, warn, error (default: info)
  SEED       Load demo fixtures when the database is empty (default: true)

EXAMPLES:
  # Run with a file database
  DB_PATH=./data/procure.db ./server serve

  # Run ephemeral, verbose
  DB_PATH=:memory: LOG_LEVEL=debug ./server serve

  # Populate a fresh database without starting the server
  DB_PATH=./data/procure.db ./server seed

SEE ALSO:
  - config/config.go: Environment parsing
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Persistence
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/govstack/procure-engine/api"
	"github.com/govstack/procure-engine/config"
	"github.com/govstack/procure-engine/goodsreceipt"
	"github.com/govstack/procure-engine/grc"
	"github.com/govstack/procure-engine/lifecycle"
	"github.com/govstack/procure-engine/purchaseorder"
	"github.com/govstack/procure-engine/requisition"
	"github.com/govstack/procure-engine/store/sqlite"
	"github.com/govstack/procure-engine/tender"
)

func main() {
	root := &cobra.Command{
		Use:          "procure-server",
		Short:        "Procurement entity lifecycle engine",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), seedCmd())

	// No subcommand behaves like serve.
	if len(os.Args) < 2 {
		root.SetArgs([]string{"serve"})
	}

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the demo fixtures into the database and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed()
		},
	}
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := cfg.Logger()
	if err != nil {
		return err
	}
	defer log.Sync()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	svc, err := buildServices(ctx, store, cfg.Seed, log)
	if err != nil {
		return err
	}

	handler := api.NewHandler(svc, store, log)
	router := api.NewRouter(handler, log)

	sweeper := api.NewOverdueSweeper(handler, log)
	sweeper.Start()
	defer sweeper.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("addr", cfg.Addr()),
			zap.String("db", cfg.DBPath))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

func runSeed() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := cfg.Logger()
	if err != nil {
		return err
	}
	defer log.Sync()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := persistFixtures(ctx, store); err != nil {
		return err
	}

	log.Info("fixtures written", zap.String("db", cfg.DBPath))
	return nil
}

// buildServices loads each register from the store. Empty registers fall
// back to the demo fixtures when seeding is enabled, or start blank.
func buildServices(ctx context.Context, store *sqlite.Store, seed bool, log *zap.Logger) (api.Services, error) {
	clock := lifecycle.SystemClock{}

	reqs, reqSeq, err := loadRegister(ctx, store, sqlite.RegisterRequisitions,
		requisition.Seed, requisition.SeedSequence, seed)
	if err != nil {
		return api.Services{}, err
	}
	tenders, tenderSeq, err := loadRegister(ctx, store, sqlite.RegisterTenders,
		tender.Seed, tender.SeedSequence, seed)
	if err != nil {
		return api.Services{}, err
	}
	orders, orderSeq, err := loadRegister(ctx, store, sqlite.RegisterPurchaseOrders,
		purchaseorder.Seed, purchaseorder.SeedSequence, seed)
	if err != nil {
		return api.Services{}, err
	}
	receipts, receiptSeq, err := loadRegister(ctx, store, sqlite.RegisterGoodsReceipts,
		goodsreceipt.Seed, goodsreceipt.SeedSequence, seed)
	if err != nil {
		return api.Services{}, err
	}
	registers, findingSeq, err := loadGRC(ctx, store, seed)
	if err != nil {
		return api.Services{}, err
	}

	return api.Services{
		Requisitions: requisition.NewService(reqs, reqSeq, clock, log),
		Tenders:      tender.NewService(tenders, tenderSeq, clock, log),
		Orders:       purchaseorder.NewService(orders, orderSeq, clock, log),
		Receipts:     goodsreceipt.NewService(receipts, receiptSeq, clock, log),
		GRC:          grc.NewService(registers, findingSeq, clock, log),
	}, nil
}

func loadRegister[E lifecycle.Entity[E]](ctx context.Context, store *sqlite.Store,
	register string, seed func() []E, seedSeq int, useFixtures bool) ([]E, int, error) {
	count, err := store.Count(ctx, register)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to inspect %s: %w", register, err)
	}
	if count > 0 {
		items, err := sqlite.LoadAll[E](ctx, store, register)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to load %s: %w", register, err)
		}
		seq, err := store.Sequence(ctx, register, seedSeq)
		if err != nil {
			return nil, 0, err
		}
		return items, seq, nil
	}
	if !useFixtures {
		return nil, seedSeq, nil
	}
	return seed(), seedSeq, nil
}

// loadGRC loads the four governance registers. The findings register
// decides whether the store has been populated.
func loadGRC(ctx context.Context, store *sqlite.Store, useFixtures bool) (grc.Registers, int, error) {
	count, err := store.Count(ctx, sqlite.RegisterFindings)
	if err != nil {
		return grc.Registers{}, 0, fmt.Errorf("failed to inspect %s: %w", sqlite.RegisterFindings, err)
	}
	if count == 0 {
		if !useFixtures {
			return grc.Registers{}, grc.SeedSequence, nil
		}
		return grc.Seed(), grc.SeedSequence, nil
	}

	var registers grc.Registers
	if registers.Findings, err = sqlite.LoadAll[grc.Finding](ctx, store, sqlite.RegisterFindings); err != nil {
		return grc.Registers{}, 0, err
	}
	if registers.Compliance, err = sqlite.LoadAll[grc.ComplianceCheck](ctx, store, sqlite.RegisterCompliance); err != nil {
		return grc.Registers{}, 0, err
	}
	if registers.Risks, err = sqlite.LoadAll[grc.RiskAssessment](ctx, store, sqlite.RegisterRisks); err != nil {
		return grc.Registers{}, 0, err
	}
	if registers.Violations, err = sqlite.LoadAll[grc.PolicyViolation](ctx, store, sqlite.RegisterViolations); err != nil {
		return grc.Registers{}, 0, err
	}
	seq, err := store.Sequence(ctx, sqlite.RegisterFindings, grc.SeedSequence)
	if err != nil {
		return grc.Registers{}, 0, err
	}
	return registers, seq, nil
}

// persistFixtures writes the demo fixtures and their sequence counters.
func persistFixtures(ctx context.Context, store *sqlite.Store) error {
	if err := sqlite.Replace(ctx, store, sqlite.RegisterRequisitions, requisition.Seed()); err != nil {
		return err
	}
	if err := store.SaveSequence(ctx, sqlite.RegisterRequisitions, requisition.SeedSequence); err != nil {
		return err
	}
	if err := sqlite.Replace(ctx, store, sqlite.RegisterTenders, tender.Seed()); err != nil {
		return err
	}
	if err := store.SaveSequence(ctx, sqlite.RegisterTenders, tender.SeedSequence); err != nil {
		return err
	}
	if err := sqlite.Replace(ctx, store, sqlite.RegisterPurchaseOrders, purchaseorder.Seed()); err != nil {
		return err
	}
	if err := store.SaveSequence(ctx, sqlite.RegisterPurchaseOrders, purchaseorder.SeedSequence); err != nil {
		return err
	}
	if err := sqlite.Replace(ctx, store, sqlite.RegisterGoodsReceipts, goodsreceipt.Seed()); err != nil {
		return err
	}
	if err := store.SaveSequence(ctx, sqlite.RegisterGoodsReceipts, goodsreceipt.SeedSequence); err != nil {
		return err
	}

	registers := grc.Seed()
	if err := sqlite.Replace(ctx, store, sqlite.RegisterFindings, registers.Findings); err != nil {
		return err
	}
	if err := sqlite.Replace(ctx, store, sqlite.RegisterCompliance, registers.Compliance); err != nil {
		return err
	}
	if err := sqlite.Replace(ctx, store, sqlite.RegisterRisks, registers.Risks); err != nil {
		return err
	}
	if err := sqlite.Replace(ctx, store, sqlite.RegisterViolations, registers.Violations); err != nil {
		return err
	}
	return store.SaveSequence(ctx, sqlite.RegisterFindings, grc.SeedSequence)
}
