package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/union-tracker/internal/config"
	"github.com/union-tracker/internal/infrastructure/mapbox"
	"github.com/union-tracker/internal/pkg/logger"
	"github.com/union-tracker/internal/repository/mongo"
	"github.com/union-tracker/internal/usecase"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load or clear union records",
}

var seedImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import unions from a JSON file",
	Long: `Import creates every record in the file through the normal create path:
fields are validated, slugs derived and addresses geocoded. Import stops at
the first failing record.`,
	RunE: runSeedImport,
}

var seedDestroyCmd = &cobra.Command{
	Use:   "destroy",
	Short: "Delete every union",
	RunE:  runSeedDestroy,
}

func init() {
	seedImportCmd.Flags().StringVarP(&seedFile, "file", "f", "_data/unions.json", "Seed data file")

	seedCmd.AddCommand(seedImportCmd, seedDestroyCmd)
}

// seedEnv holds what the seed commands need, connected to the persistent
// store.
type seedEnv struct {
	log    *zap.Logger
	db     *mongo.DB
	seeder *usecase.SeedUseCase
}

func newSeedEnv() (*seedEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.Store.Driver != config.StoreMongo {
		return nil, fmt.Errorf("seeding requires STORE_DRIVER=%s, got %q", config.StoreMongo, cfg.Store.Driver)
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	log, err := logger.New(level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := mongo.New(&cfg.Mongo, log)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	defer cancel()
	if err := db.EnsureIndexes(ctx, cfg.Mongo.Collection); err != nil {
		_ = db.Close(context.Background())
		return nil, err
	}

	// Seeding runs without Redis: no geocode cache and no events.
	geocodeUC := usecase.NewGeocodeUseCase(mapbox.NewMapboxClient(&cfg.Mapbox, log), nil, log, cfg.Cache.GeocodeCacheTTL)
	unionUC := usecase.NewUnionUseCase(mongo.NewUnionRepository(db, cfg.Mongo.Collection), geocodeUC, nil, log, usecase.UnionOptions{
		DefaultLimit: cfg.Query.DefaultLimit,
		CountScope:   cfg.Query.CountScope,
	})

	return &seedEnv{
		log:    log,
		db:     db,
		seeder: usecase.NewSeedUseCase(unionUC, log),
	}, nil
}

func (e *seedEnv) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.db.Close(ctx); err != nil {
		e.log.Error("Failed to close MongoDB", zap.Error(err))
	}
	_ = e.log.Sync()
}

func runSeedImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(seedFile)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	env, err := newSeedEnv()
	if err != nil {
		return err
	}
	defer env.close()

	n, err := env.seeder.Import(cmd.Context(), f)
	if err != nil {
		return fmt.Errorf("imported %d records before failing: %w", n, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Data imported: %d unions\n", n)
	return nil
}

func runSeedDestroy(cmd *cobra.Command, args []string) error {
	env, err := newSeedEnv()
	if err != nil {
		return err
	}
	defer env.close()

	n, err := env.seeder.Destroy(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Data destroyed: %d unions\n", n)
	return nil
}
