package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abhisek/healthquest/internal/app"
	"github.com/abhisek/healthquest/internal/config"
	"github.com/abhisek/healthquest/internal/content"
	"github.com/abhisek/healthquest/internal/engine"
	"github.com/abhisek/healthquest/internal/random"
	"github.com/abhisek/healthquest/internal/store"
)

// loadConfig resolves configuration with the persistent flags applied.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var o config.Overrides
	o.DBPath, _ = cmd.Flags().GetString("db")
	o.CatalogPath, _ = cmd.Flags().GetString("catalog")
	o.Seed, _ = cmd.Flags().GetInt64("seed")
	return config.Load(o)
}

// loadCatalog returns the catalog at path, or the embedded one when path
// is empty.
func loadCatalog(path string) (*content.Catalog, error) {
	if path == "" {
		return content.Default(), nil
	}
	c, err := content.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}

// openEngine opens the store and builds an engine over it. The returned
// close function releases the store.
func openEngine(cmd *cobra.Command) (*engine.Engine, func() error, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	catalog, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, nil, err
	}
	rng, _, err := random.New(cfg.Seed)
	if err != nil {
		return nil, nil, err
	}

	if err := store.EnsureDir(cfg.DBPath); err != nil {
		return nil, nil, fmt.Errorf("create data dir: %w", err)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	eng := engine.New(st.KV(), catalog,
		engine.WithRand(rng),
		engine.WithEventRepo(st.EventRepo()),
		engine.WithWarnings(os.Stderr),
	)
	if _, err := eng.LoadState(cmd.Context()); err != nil {
		st.Close()
		return nil, nil, err
	}
	return eng, st.Close, nil
}

// runApp opens the engine and launches the TUI.
func runApp(cmd *cobra.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("the game needs an interactive terminal; try `healthquest stats` instead")
	}

	eng, closeStore, err := openEngine(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	return app.Run(eng)
}
