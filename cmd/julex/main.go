package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"julex/internal/cache"
	"julex/internal/config"
	"julex/internal/http/handlers"
	applog "julex/internal/log"
	"julex/internal/repos"
)

var rootCmd = &cobra.Command{
	Use:           "julex",
	Short:         "Julex jewelry storefront",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a YAML catalog into the database",
	Long: `Insert the categories and products of a YAML catalog. Rows whose slug
already exists are skipped, so the command can be re-run safely.`,
	RunE: runSeed,
}

var seedFile string

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "catalog file (defaults to SEED_FILE)")
	rootCmd.AddCommand(serveCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "julex:", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	logger, err := applog.Init(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pc cache.ProductCache = cache.NewMemory(cfg.CacheTTL)
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.CacheTTL)
		if err != nil {
			logger.Warn("cache.redis.unavailable", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			defer rc.Close()
			pc = rc
		}
	}

	app := handlers.NewApp(handlers.NewDeps(db, pc), handlers.Options{AccessLog: true})

	go func() {
		<-ctx.Done()
		logger.Info("server.shutdown")
		_ = app.Shutdown()
	}()

	logger.Info("server.start", zap.String("port", cfg.Port), zap.String("env", cfg.Env), zap.String("db", cfg.DBDriver))
	return app.Listen(":" + cfg.Port)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	logger, err := applog.Init(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	path := seedFile
	if path == "" {
		path = cfg.SeedFile
	}
	if path == "" {
		return fmt.Errorf("no catalog file: pass -f or set SEED_FILE")
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	c, err := repos.ParseCatalog(f)
	if err != nil {
		return err
	}

	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cats, prods, err := repos.SeedCatalog(db, c)
	if err != nil {
		return err
	}
	logger.Info("seed.catalog.done", zap.String("file", path), zap.Int("categories", cats), zap.Int("products", prods))
	fmt.Fprintf(cmd.OutOrStdout(), "added %d categories, %d products\n", cats, prods)
	return nil
}
