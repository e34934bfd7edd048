package main

import (
	"context"
	"fmt"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const app = "jobboardctl"

var (
	// Used for flags.
	cfgFile  string
	debugLog bool
	jsonLog  bool

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "jobboardctl runs operator tasks against the job board database",
		SilenceUsage: true,
	}
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is JOBBOARD_CONFIG or env only)")
	rootCmd.PersistentFlags().BoolVarP(&debugLog, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&jsonLog, "json", "j", false, "json format for logging")

	rootCmd.AddCommand(migrateCmd, seedCmd, createAdminCmd)
}

type env struct {
	cfg config.Config
	log *zap.Logger
	db  database.DB
}

// openEnv loads config and connects to Postgres. Callers must close env.
func openEnv(ctx context.Context) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Database.Driver == "memory" {
		return nil, fmt.Errorf("%s needs DB_DRIVER=postgres", app)
	}

	l, err := logger.New(jsonLog, debugLog)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	db, err := dbpostgres.Connect(connectCtx, cfg.Database, l)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: l, db: db}, nil
}

func (e *env) close() {
	_ = e.db.Close()
	_ = e.log.Sync()
}

func loadConfig() (config.Config, error) {
	if cfgFile != "" {
		return config.LoadFile(cfgFile)
	}
	return config.Load()
}
