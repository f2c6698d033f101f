package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/movetrace/homerange-backend-go/internal/config"
	"github.com/movetrace/homerange-backend-go/internal/database"
	"github.com/movetrace/homerange-backend-go/internal/gpx"
	"github.com/movetrace/homerange-backend-go/internal/models"
	"github.com/movetrace/homerange-backend-go/internal/projection"
	"github.com/movetrace/homerange-backend-go/internal/render"
	"github.com/movetrace/homerange-backend-go/internal/repository"
	"github.com/movetrace/homerange-backend-go/internal/service"
)

var (
	configPath string
	cfg        *config.Config
)

func main() {
	root := &cobra.Command{
		Use:   "homerange",
		Short: "Home-range and movement analysis for animal GPS telemetry",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			return database.Init(database.Config{Path: cfg.DBPath})
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	root.AddCommand(importCmd(), mcpCmd(), kdeCmd(), mapCmd(), fractalCmd())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
	database.Close()
}

func newServices() (*service.ImportService, *service.HomeRangeService, *service.FractalService, *service.MapService, error) {
	transform, err := projection.NewTransform(cfg.UTMZone, cfg.UTMNorthern)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	db := database.GetDB()
	trackRepo := repository.NewTrackRepository(db)
	estimateRepo := repository.NewEstimateRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	importSvc := service.NewImportService(trackRepo, taskRepo, transform)
	hrSvc := service.NewHomeRangeService(trackRepo, estimateRepo, transform)
	fracSvc := service.NewFractalService(trackRepo, cfg.OutputDir)
	mapper := render.NewMapper(render.NewTileFetcher(cfg.TileURL))
	mapSvc := service.NewMapService(trackRepo, hrSvc, mapper, cfg.OutputDir)

	return importSvc, hrSvc, fracSvc, mapSvc, nil
}

func importCmd() *cobra.Command {
	var layer, group string

	cmd := &cobra.Command{
		Use:   "import <file.gpx>",
		Short: "Import a GPX file into storage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			importSvc, _, _, _, err := newServices()
			if err != nil {
				return err
			}

			result, err := importSvc.ImportFile(args[0], gpx.Layer(layer), group)
			if err != nil {
				return err
			}
			fmt.Printf("imported %d points into group %s\n", result.PointCount, result.GroupID)
			return nil
		},
	}
	cmd.Flags().StringVar(&layer, "layer", string(gpx.LayerWaypoints), "GPX layer: waypoints, track_points or route_points")
	cmd.Flags().StringVar(&group, "group", "", "study group id")
	cmd.MarkFlagRequired("group")
	return cmd
}

func estimateFlags(cmd *cobra.Command, groups *string, percent *float64, unit *string) {
	cmd.Flags().StringVar(groups, "groups", "", "comma-separated group ids")
	cmd.Flags().Float64Var(percent, "percent", 95, "inclusion/contour percent")
	cmd.Flags().StringVar(unit, "unit", "km2", "area unit: m2, km2 or ha")
	cmd.MarkFlagRequired("groups")
}

func mcpCmd() *cobra.Command {
	var groups, unit string
	var percent float64

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Compute minimum convex polygon home ranges",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, hrSvc, _, _, err := newServices()
			if err != nil {
				return err
			}

			estimates, err := hrSvc.EstimateMCP(models.HomeRangeRequest{
				GroupIDs: splitGroups(groups),
				Percent:  percent,
				Unit:     models.AreaUnit(unit),
			})
			if err != nil {
				return err
			}
			printEstimates(estimates)
			return nil
		},
	}
	estimateFlags(cmd, &groups, &percent, &unit)
	return cmd
}

func kdeCmd() *cobra.Command {
	var groups, unit, bandwidth string
	var percent float64

	cmd := &cobra.Command{
		Use:   "kde",
		Short: "Compute kernel-density home ranges",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, hrSvc, _, _, err := newServices()
			if err != nil {
				return err
			}

			estimates, err := hrSvc.EstimateKDE(models.HomeRangeRequest{
				GroupIDs:  splitGroups(groups),
				Percent:   percent,
				Unit:      models.AreaUnit(unit),
				Bandwidth: bandwidth,
			})
			if err != nil {
				return err
			}
			printEstimates(estimates)
			return nil
		},
	}
	estimateFlags(cmd, &groups, &percent, &unit)
	cmd.Flags().StringVar(&bandwidth, "bandwidth", "reference", `bandwidth: "reference" or meters`)
	return cmd
}

func mapCmd() *cobra.Command {
	var groups, estimator, unit, bandwidth string
	var percent float64

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Render groups (and optional home ranges) onto a basemap",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, _, mapSvc, err := newServices()
			if err != nil {
				return err
			}

			result, err := mapSvc.Render(context.Background(), service.MapRequest{
				GroupIDs:  splitGroups(groups),
				Estimator: estimator,
				Percent:   percent,
				Unit:      models.AreaUnit(unit),
				Bandwidth: bandwidth,
			})
			if err != nil {
				return err
			}
			fmt.Printf("map written to %s\n", result.Path)
			return nil
		},
	}
	estimateFlags(cmd, &groups, &percent, &unit)
	cmd.Flags().StringVar(&estimator, "estimator", "", `overlay: "mcp", "kde" or empty for points only`)
	cmd.Flags().StringVar(&bandwidth, "bandwidth", "reference", `KDE bandwidth: "reference" or meters`)
	return cmd
}

func fractalCmd() *cobra.Command {
	var group, window, lagMode, plot string

	cmd := &cobra.Command{
		Use:   "fractal",
		Short: "Estimate the spectral fractal dimension of a group's path",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, fracSvc, _, err := newServices()
			if err != nil {
				return err
			}

			result, err := fracSvc.Estimate(models.FractalRequest{
				GroupID:  group,
				Window:   window,
				LagMode:  lagMode,
				PlotPath: plot,
			})
			if err != nil {
				return err
			}
			fmt.Printf("group %s: D = %.3f (beta = %.2f, n = %d)\n",
				result.GroupID, result.Dimension, result.Exponent, result.PointCount)
			if result.PlotPath != "" {
				fmt.Printf("diagnostic plot written to %s\n", result.PlotPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&group, "group", "", "study group id")
	cmd.Flags().StringVar(&window, "window", "", "calendar window: early, mid or late")
	cmd.Flags().StringVar(&lagMode, "lag-mode", "automatic", `lag selection: "automatic" or "full"`)
	cmd.Flags().StringVar(&plot, "plot", "", "write a log-log diagnostic plot to this file")
	cmd.MarkFlagRequired("group")
	return cmd
}

func splitGroups(s string) []string {
	var out []string
	for _, g := range strings.Split(s, ",") {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

func printEstimates(estimates []models.HomeRangeEstimate) {
	for _, est := range estimates {
		fmt.Printf("%s %s %.0f%%: %.4f %s (%d points)\n",
			est.GroupID, est.Estimator, est.Percent, est.Area, est.Unit, est.PointCount)
	}
	if len(estimates) == 0 {
		fmt.Fprintln(os.Stderr, "no estimates produced")
	}
}
