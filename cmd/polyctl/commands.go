package main

import (
	"context"
	"fmt"
	"os"

	availsvc "polypoint-backend/internal/application/availability"
	"polypoint-backend/internal/application/capacity"
	devsvc "polypoint-backend/internal/application/developers"
	"polypoint-backend/internal/application/snapshot"
	"polypoint-backend/internal/config"
	"polypoint-backend/internal/infrastructure/database"
	"polypoint-backend/internal/pkg/constants"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type services struct {
	pi           string
	developers   *devsvc.Service
	availability *availsvc.Service
}

// connect opens the record store from config. The CLI runs without Redis;
// a nil cache disables dashboard caching.
func connect() (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	db, err := database.Open(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	pi := flagPI
	if pi == "" {
		pi = cfg.DefaultPI
	}
	return &services{
		pi:           pi,
		developers:   &devsvc.Service{DB: db},
		availability: &availsvc.Service{DB: db},
	}, nil
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the default roster and sprint calendar for an interval",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := connect()
		if err != nil {
			return err
		}
		ctx := context.Background()
		if err := s.developers.EnsureDefaults(ctx, s.pi); err != nil {
			return err
		}
		created, err := s.availability.SeedDefaultSprints(ctx, s.pi)
		if err != nil {
			return err
		}
		fmt.Printf("Seeded %s: %d availability rows created\n", s.pi, created)
		return nil
	},
}

var (
	flagTeam   string
	flagSprint string
	flagMetric string
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render a capacity metric table in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !constants.IsValidMetric(flagMetric) {
			return fmt.Errorf("unknown metric %q (sp, dev, maintain)", flagMetric)
		}
		s, err := connect()
		if err != nil {
			return err
		}
		ctx := context.Background()
		devs, err := s.developers.List(ctx, s.pi)
		if err != nil {
			return err
		}
		rows, err := s.availability.List(ctx, s.pi)
		if err != nil {
			return err
		}
		tables := capacity.Compute(rows, devs, capacity.Filter{Team: flagTeam, Sprint: flagSprint})
		for i := range tables {
			t := &tables[i]
			if string(t.Metric) != flagMetric {
				continue
			}
			fmt.Printf("%s: %s\n", s.pi, t.Title)
			tw := tablewriter.NewWriter(os.Stdout)
			tw.Header(t.Header())
			if err := tw.Bulk(t.Records()); err != nil {
				return err
			}
			if err := tw.Render(); err != nil {
				return err
			}
		}
		return nil
	},
}

var flagOut string

var exportCmd = &cobra.Command{
	Use:       "export {availabilities|developers}",
	Short:     "Write a CSV export to a file or stdout",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"availabilities", "developers"},
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := connect()
		if err != nil {
			return err
		}
		out := os.Stdout
		if flagOut != "" {
			f, err := os.Create(flagOut)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		ctx := context.Background()
		switch args[0] {
		case "availabilities":
			return s.availability.ExportCSV(ctx, s.pi, out)
		case "developers":
			return s.developers.ExportCSV(ctx, s.pi, out)
		}
		return fmt.Errorf("unknown export target %q", args[0])
	},
}

var (
	flagFile  string
	flagApply bool
)

var importCmd = &cobra.Command{
	Use:       "import {availabilities|developers}",
	Short:     "Import a CSV file",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"availabilities", "developers"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagFile == "" {
			return fmt.Errorf("--file is required")
		}
		s, err := connect()
		if err != nil {
			return err
		}
		f, err := os.Open(flagFile)
		if err != nil {
			return err
		}
		defer f.Close()

		ctx := context.Background()
		switch args[0] {
		case "developers":
			n, err := s.developers.ImportCSV(ctx, s.pi, f)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d developers\n", n)
			return nil
		case "availabilities":
			table, err := snapshot.Parse(f)
			if err != nil {
				return err
			}
			result, err := s.availability.ImportMerge(ctx, s.pi, table)
			if err != nil {
				return err
			}
			if !flagApply {
				fmt.Printf("Dry run: %d dates would be updated (use --apply to persist)\n", result.MatchedDates)
				return nil
			}
			if result.MatchedDates == 0 {
				fmt.Println("No matching dates found; nothing to save")
				return nil
			}
			if err := s.availability.Save(ctx, s.pi, result.Rows); err != nil {
				return err
			}
			fmt.Printf("Updated %d dates\n", result.MatchedDates)
			return nil
		}
		return fmt.Errorf("unknown import target %q", args[0])
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&flagTeam, "team", constants.FilterAll, "team filter")
	dashboardCmd.Flags().StringVar(&flagSprint, "sprint", constants.FilterAll, "sprint filter")
	dashboardCmd.Flags().StringVar(&flagMetric, "metric", string(constants.MetricStoryPoints), "metric: sp, dev or maintain")
	exportCmd.Flags().StringVarP(&flagOut, "out", "o", "", "output file (default stdout)")
	importCmd.Flags().StringVarP(&flagFile, "file", "f", "", "input CSV file")
	importCmd.Flags().BoolVar(&flagApply, "apply", false, "persist the availability merge")
}
