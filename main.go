package main

import (
	"flag"
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"sfcatalog/catalog"
	"sfcatalog/config"
	"sfcatalog/data"
	"sfcatalog/ui"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	exportPath := flag.String("export", "", "write the catalog snapshot as JSON to this path (- for stdout) and exit")
	schemaOnly := flag.Bool("schema", false, "print the JSON Schema of the catalog snapshot and exit")
	flag.Parse()

	if *schemaOnly {
		out, err := catalog.SnapshotSchema()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Stdout.Write(append(out, '\n'))
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg.Log.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	src, err := data.LoadSources(cfg.Data.Items, cfg.Data.Ores, cfg.Data.Recipes)
	if err != nil {
		log.Fatal("failed to load game data", zap.Error(err))
	}

	items := catalog.BuildItemCatalog(src.Items, src.Ores)
	recipes := catalog.BuildRecipeCatalog(items, src.Recipes, catalog.NewLogSink(log), catalog.RecipeOptions{
		Workers:        cfg.Build.Workers,
		StrictDuration: cfg.Build.StrictDuration,
	})
	log.Info("catalogs built",
		zap.Int("items", items.Len()),
		zap.Int("recipes", recipes.Len()),
		zap.Int("raw_recipes", len(src.Recipes)),
	)

	if *exportPath != "" {
		if err := export(*exportPath, catalog.NewSnapshot(items, recipes)); err != nil {
			log.Fatal("failed to export snapshot", zap.Error(err))
		}
		return
	}

	store, err := data.OpenStore(cfg.Database.DSN(), log)
	if err != nil {
		log.Warn("database unavailable, factories will not be saved", zap.Error(err))
		store = nil
	} else {
		defer store.Close()
	}

	myApp := app.NewWithID("io.sfcatalog")
	myWindow := ui.BuildUI(myApp, items, recipes, store, log)
	myWindow.ShowAndRun()
}

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func export(path string, snap catalog.Snapshot) error {
	if path == "-" {
		return snap.WriteJSON(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := snap.WriteJSON(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
