package cmd

import (
	"context"
	"fmt"

	"github.com/korjavin/fridgechef/pkg/catalog"
	"github.com/korjavin/fridgechef/pkg/config"
	"github.com/korjavin/fridgechef/pkg/favorites"
	"github.com/korjavin/fridgechef/pkg/finder"
	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/pantry"
	"github.com/korjavin/fridgechef/pkg/state"
	"github.com/korjavin/fridgechef/pkg/storage"
	"github.com/spf13/cobra"
)

// app is what every subcommand works with once the root has set it up
type app struct {
	finder  *finder.Service
	scope   string
	store   *storage.Store
	catalog *catalog.Catalog
}

func (a *app) close() {
	if a.catalog != nil {
		a.catalog.Close()
	}
	if a.store != nil {
		a.store.Close()
	}
}

// Execute runs the root command.
func Execute() error {
	root, a := newRootCmd()
	defer a.close()
	return root.Execute()
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	var dataDir, catalogSource string

	root := &cobra.Command{
		Use:          "fridgechef",
		Short:        "Find recipes for the food you have",
		Long:         "Keep a list of the ingredients you have and rank catalog recipes by how many of them they use.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return err
			}
			logger.SetLevel(cfg.LogLevel)
			if cmd.Flags().Changed("data-dir") {
				cfg.DataDir = dataDir
			}
			if cmd.Flags().Changed("catalog") {
				cfg.CatalogSource = catalogSource
			}
			return a.open(cmd.Context(), cfg)
		},
	}

	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory of the local store (default from DATA_DIR)")
	root.PersistentFlags().StringVar(&catalogSource, "catalog", "", "recipe catalog file or URL (default from CATALOG_SOURCE)")

	root.AddCommand(
		newAddCmd(a),
		newBulkCmd(a),
		newRemoveCmd(a),
		newListCmd(a),
		newClearCmd(a),
		newSuggestCmd(a),
		newSearchCmd(a),
		newRecipeCmd(a),
		newFavCmd(a),
		newFavoritesCmd(a),
	)
	return root, a
}

func (a *app) open(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return err
	}
	a.store = store

	scope, err := store.DeviceID()
	if err != nil {
		return fmt.Errorf("failed to resolve device id: %w", err)
	}
	a.scope = "device:" + scope

	loadCtx, cancel := context.WithTimeout(ctx, cfg.CatalogTimeout)
	defer cancel()
	a.catalog = catalog.NewLoader(cfg.CatalogTimeout, cfg.SuggestLimit).LoadOrFallback(loadCtx, cfg.CatalogSource)

	a.finder = finder.New(a.catalog, pantry.New(store), favorites.New(store), state.New(cfg.SessionTTL))
	return nil
}
