package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"weather-report/config"
	"weather-report/internal/forecast"
	"weather-report/internal/report"
	"weather-report/internal/storage"
	"weather-report/internal/trend"

	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "weather-report",
		Short: "Weather forecast report generator",
		Long:  "A tool to fetch a 5-day weather forecast, analyze temperature trends, and render a chart report",
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	reportCommand := reportCmd()
	rootCmd.AddCommand(reportCommand)
	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(historyCmd())

	// Running with no subcommand generates the report with config defaults.
	rootCmd.RunE = reportCommand.RunE

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func reportCmd() *cobra.Command {
	var (
		city     string
		output   string
		provider string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run the full report pipeline",
		Long:  "Fetch the forecast, print temperature statistics, and write the chart image",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if city != "" {
				cfg.Weather.City = city
			}
			if output != "" {
				cfg.Report.Output = output
			}
			if provider != "" {
				cfg.Weather.Provider = provider
			}

			source, err := newSource(cfg)
			if err != nil {
				return err
			}

			if verbose {
				log.Printf("Using provider %s for city %s", source.Name(), cfg.Weather.City)
			}

			fmt.Printf("Fetching weather data for %s...\n", cfg.Weather.City)
			set, err := source.Fetch(context.Background(), cfg.Weather.City)
			if err != nil {
				return fmt.Errorf("failed to fetch forecast: %w", err)
			}

			summary, err := trend.Analyze(set)
			if err != nil {
				return fmt.Errorf("failed to analyze forecast: %w", err)
			}

			fmt.Printf("\nTemperature Analysis:\n")
			fmt.Printf("Minimum Temperature: %.1f°C\n", summary.Min)
			fmt.Printf("Maximum Temperature: %.1f°C\n", summary.Max)
			fmt.Printf("Average Temperature: %.1f°C\n", summary.Mean)

			fmt.Println("\nGenerating visualization...")
			renderer := report.NewRenderer(cfg.Report.PanelWidth, cfg.Report.PanelHeight)
			if err := renderer.Render(set, cfg.Report.Output); err != nil {
				return fmt.Errorf("failed to render report: %w", err)
			}
			fmt.Printf("Visualization saved as '%s'\n", cfg.Report.Output)

			// History is best-effort; a storage problem must not fail the run.
			if cfg.Database.Enabled {
				db, err := storage.NewDatabase(cfg.Database.Path)
				if err != nil {
					log.Printf("Warning: could not open database: %v", err)
					return nil
				}
				defer db.Close()

				if _, err := db.SaveRun(set, summary, cfg.Report.Output); err != nil {
					log.Printf("Warning: could not save run: %v", err)
				} else if verbose {
					log.Printf("Run saved to %s", cfg.Database.Path)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "city to fetch the forecast for")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output image path")
	cmd.Flags().StringVar(&provider, "provider", "", "forecast provider (sample or openweather)")

	return cmd
}

func fetchCmd() *cobra.Command {
	var (
		city     string
		provider string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the forecast once and print it",
		Long:  "Fetch the forecast for the configured city and print the records as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if city != "" {
				cfg.Weather.City = city
			}
			if provider != "" {
				cfg.Weather.Provider = provider
			}

			source, err := newSource(cfg)
			if err != nil {
				return err
			}

			set, err := source.Fetch(context.Background(), cfg.Weather.City)
			if err != nil {
				return fmt.Errorf("failed to fetch forecast: %w", err)
			}

			output, _ := json.MarshalIndent(set, "", "  ")
			fmt.Println(string(output))

			return nil
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "city to fetch the forecast for")
	cmd.Flags().StringVar(&provider, "provider", "", "forecast provider (sample or openweather)")

	return cmd
}

func historyCmd() *cobra.Command {
	var (
		limit int
		from  string
		to    string
		prune time.Duration
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent report runs",
		Long:  "List report runs stored in the local database, optionally filtered by date or pruned by age",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			db, err := storage.NewDatabase(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			if prune > 0 {
				if err := db.CleanOldRuns(prune); err != nil {
					return fmt.Errorf("failed to prune runs: %w", err)
				}
				fmt.Printf("Pruned runs older than %s.\n", prune)
			}

			var runs []storage.ReportRun
			if from != "" || to != "" {
				fromTime, err := parseDay(from, time.Time{})
				if err != nil {
					return err
				}
				toTime, err := parseDay(to, time.Now())
				if err != nil {
					return err
				}
				if to != "" {
					toTime = toTime.Add(24 * time.Hour) // inclusive end day
				}
				runs, err = db.RunsByRange(fromTime, toTime)
				if err != nil {
					return fmt.Errorf("failed to list runs: %w", err)
				}
			} else {
				runs, err = db.RecentRuns(limit)
				if err != nil {
					return fmt.Errorf("failed to list runs: %w", err)
				}
			}

			if len(runs) == 0 {
				fmt.Println("No report runs stored yet.")
				return nil
			}

			for _, run := range runs {
				fmt.Printf("#%d  %s  %s (%s)  records=%d  min=%.1f°C max=%.1f°C mean=%.1f°C  -> %s\n",
					run.ID,
					run.FetchedAt.Format("2006-01-02 15:04"),
					run.City,
					run.Provider,
					run.RecordCount,
					run.MinTemp,
					run.MaxTemp,
					run.MeanTemp,
					run.OutputPath,
				)
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs to list")
	cmd.Flags().StringVar(&from, "from", "", "only list runs fetched on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "only list runs fetched on or before this date (YYYY-MM-DD)")
	cmd.Flags().DurationVar(&prune, "prune", 0, "delete runs older than this age before listing (e.g. 168h)")

	return cmd
}

func parseDay(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return t, nil
}

func newSource(cfg *config.Config) (forecast.Source, error) {
	switch cfg.Weather.Provider {
	case "sample", "":
		return forecast.NewSampleSource(), nil
	case "openweather":
		return forecast.NewOpenWeatherSource(cfg.Weather.APIKey, cfg.Weather.Country, cfg.Weather.Units), nil
	default:
		return nil, fmt.Errorf("unknown forecast provider %q", cfg.Weather.Provider)
	}
}
