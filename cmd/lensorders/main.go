package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/diewo77/lens-orders/internal/config"
	"github.com/diewo77/lens-orders/internal/db"
	"github.com/joho/godotenv"
)

var configFlag = flag.String("config", "", "Path to a YAML config file (default $"+config.EnvConfigFile+")")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: lensorders [-config file] <command> [flags]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The schema is created or checked on every start
	if err := db.EnsureSchema(cfg.Database.Path); err != nil {
		log.Fatalf("Failed to prepare database %s: %v", cfg.Database.Path, err)
	}
	if cfg.Database.Debug {
		log.Printf("Database ready: %s", cfg.Database.Path)
	}

	app, err := NewApp(cfg, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	if err := app.Run(flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, app.Message(err))
		if len(flag.Args()) == 0 {
			fmt.Fprintln(os.Stderr, "commands:\n  "+strings.Join(app.Commands(), "\n  "))
		}
		os.Exit(1)
	}
}
