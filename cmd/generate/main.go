package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/therapy-report-api/internal/config"
	"github.com/jwalitptl/therapy-report-api/internal/dataset"
	"github.com/jwalitptl/therapy-report-api/internal/generator"
	"github.com/jwalitptl/therapy-report-api/internal/model"
	"github.com/jwalitptl/therapy-report-api/internal/report"
	"github.com/jwalitptl/therapy-report-api/pkg/logger"
)

var (
	count     int
	startDate string
	endDate   string
	seed      int64
)

var rootCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic therapy session dataset",
	Long: `Generate a synthetic therapy session dataset and save it as CSV and
JSON for the report API to serve.

Weekend candidates are discarded, so the saved dataset can hold fewer
records than requested. Pass --seed for a reproducible run.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().IntVar(&count, "count", 0, "Number of candidate sessions to draw (default from config)")
	rootCmd.Flags().StringVar(&startDate, "start", "", "Range start date, YYYY-MM-DD (default: end minus configured range)")
	rootCmd.Flags().StringVar(&endDate, "end", "", "Range end date, YYYY-MM-DD (default: today)")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for a reproducible dataset (0 = time-seeded)")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := logger.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
	}
	log := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	if count == 0 {
		count = cfg.Generator.DefaultCount
	}
	end := model.Date{Time: time.Now().UTC().Truncate(24 * time.Hour)}
	start := model.Date{Time: end.AddDate(0, 0, -cfg.Generator.RangeDays)}
	if startDate != "" {
		if start, err = model.ParseDate(startDate); err != nil {
			return err
		}
	}
	if endDate != "" {
		if end, err = model.ParseDate(endDate); err != nil {
			return err
		}
	}

	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}

	records, err := generator.NewService(rng).Generate(generator.GenerateRequest{
		Count:     count,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Dataset.CSVPath), 0o755); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}

	store := dataset.NewStore(0, nil)
	if err := store.SaveCSV(cfg.Dataset.CSVPath, records); err != nil {
		return err
	}
	if err := store.SaveJSON(cfg.Dataset.JSONPath, records); err != nil {
		return err
	}

	log.Info("dataset generated",
		"requested", count,
		"generated", len(records),
		"start", start.String(),
		"end", end.String(),
		"csv", cfg.Dataset.CSVPath,
		"json", cfg.Dataset.JSONPath,
	)

	for _, sc := range report.StatusDistribution(records) {
		log.Info("status distribution", "status", string(sc.Status), "count", sc.Count)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
