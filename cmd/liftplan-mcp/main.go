package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/liftplan/internal/config"
	"github.com/meltforce/liftplan/internal/mcp"
	"github.com/meltforce/liftplan/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	remote := flag.String("remote", "", "liftplan server URL (e.g. https://liftplan.tail1234.ts.net); serves from the remote API when set")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println(Version)
		return
	}

	// stdout carries the MCP protocol, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn("failed to read .env", "error", err)
	}
	if *remote == "" {
		*remote = os.Getenv("LIFTPLAN_REMOTE")
	}

	var ds mcp.DataSource
	if *remote != "" {
		ds = mcp.NewHTTPClient(*remote)
		log.Info("mcp remote mode", "server", *remote)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		plan, err := config.LoadPlan(cfg.Plan)
		if err != nil {
			log.Error("failed to load plan", "error", err)
			os.Exit(1)
		}
		planCtx, err := plan.Context()
		if err != nil {
			log.Error("invalid plan", "error", err)
			os.Exit(1)
		}
		ds = mcp.NewLocal(planCtx, storage.NewMemory())
		log.Info("mcp local mode", "config", *configPath)
	}

	if err := mcpserver.ServeStdio(mcp.New(ds, Version, log)); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
