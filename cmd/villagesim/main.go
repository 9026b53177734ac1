// Command villagesim runs the village daily-tick simulation.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/oakvale/villagesim/internal/api"
	"github.com/oakvale/villagesim/internal/config"
	"github.com/oakvale/villagesim/internal/engine"
	"github.com/oakvale/villagesim/internal/persistence"
)

func main() {
	var (
		days       = flag.Int("days", 90, "number of days to simulate")
		seed       = flag.Int64("seed", 0, "override the tuning seed (0 keeps the file value)")
		configPath = flag.String("config", "", "path to a YAML tuning file")
		dbPath     = flag.String("db", "data/village.db", "path to the run history database")
		serve      = flag.Bool("serve", false, "serve the status API while simulating")
		verbose    = flag.Bool("verbose", false, "debug-level logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load tuning", "error", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		slog.Error("failed to create database directory", "error", err)
		os.Exit(1)
	}
	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", *dbPath)

	manager := engine.NewVillageManager(cfg, logger)
	manager.InitializeVillage()

	saveDay := func(m *engine.VillageManager) {
		if err := db.SaveRunState(m); err != nil {
			slog.Error("failed to save day", "day", m.Day, "error", err)
			os.Exit(1)
		}
	}

	if *serve {
		server := &api.Server{Manager: manager, Port: cfg.API.Port}
		server.Start()

		// Paced so observers can watch the days pass.
		runner := engine.NewRunner(manager)
		runner.MaxDays = *days
		runner.OnDay = saveDay
		runner.Run()
	} else {
		for day := 0; day < *days; day++ {
			manager.SimulateDailyTick()
			saveDay(manager)
		}
	}

	printReport(manager)
}

// printReport summarizes the finished run on stdout.
func printReport(m *engine.VillageManager) {
	s := m.Stats
	fmt.Printf("\n=== %s after %s ===\n", m.Name, pluralDays(s.Day))
	fmt.Printf("population:     %s\n", humanize.Comma(int64(s.Population)))
	fmt.Printf("avg happiness:  %.1f\n", s.AverageHappiness)
	fmt.Printf("avg health:     %.1f\n", s.AverageHealth)
	fmt.Printf("attractiveness: %.2f\n", s.Attractiveness)
	fmt.Printf("treasury:       %s coins\n", humanize.CommafWithDigits(s.Treasury, 1))
	fmt.Printf("food stored:    %s units\n", humanize.Comma(int64(s.FoodStored)))
	fmt.Printf("deaths:         %d   immigrants: %d   emigrants: %d\n",
		s.DeathsTotal, s.ImmigrantsTotal, s.EmigrantsTotal)

	fmt.Println("\nrecent events:")
	for _, e := range m.RecentEvents(10) {
		fmt.Printf("  day %3d  [%s] %s\n", e.Day, e.Category, e.Description)
	}
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
