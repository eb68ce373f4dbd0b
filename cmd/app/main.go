package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/mkarlsen/tally/internal"
	"github.com/mkarlsen/tally/internal/library"
	"github.com/mkarlsen/tally/internal/mcpserver"
	"github.com/mkarlsen/tally/internal/registry"
	"github.com/mkarlsen/tally/internal/service"
	"github.com/mkarlsen/tally/internal/store"
	pkgconfig "github.com/mkarlsen/tally/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadIfExists(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// buildService wires the registry, library, and answer store without the
// HTTP layer. Used by the export and mcp commands.
func buildService(cfg *internal.Config) (*service.Service, *store.DB, error) {
	reg, err := registry.Load(cfg.Library.Registry)
	if err != nil {
		return nil, nil, fmt.Errorf("load registry: %w", err)
	}
	lib, err := library.NewFS(cfg.Library.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("init library: %w", err)
	}
	db, err := store.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("init answer store: %w", err)
	}
	return service.NewService(reg, lib, db, nil), db, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func exportSet(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	svc, db, err := buildService(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	doc, filename, err := svc.Export(ctx, cmd.String("set"))
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	out := cmd.String("out")
	if out == "" {
		out = filename
	} else if info, statErr := os.Stat(out); statErr == nil && info.IsDir() {
		out = filepath.Join(out, filename)
	}

	if err := doc.WriteFile(out); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	fmt.Println(out)
	return nil
}

func serveMCP(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	svc, db, err := buildService(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return mcpserver.New(svc).ServeStdio()
}

func main() {
	cmd := &cli.Command{
		Name:   "tally",
		Usage:  "Compliance checklist server with Markdown and JSON question sets, progress tracking, and JSON export",
		Action: serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "export",
				Usage:  "Write the answered checklist for a question set to a JSON file",
				Action: exportSet,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "set",
						Usage:    "Question set ID to export",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "Output file or directory (defaults to the standard filename)",
					},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve the checklist tools over MCP on stdio",
				Action: serveMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
