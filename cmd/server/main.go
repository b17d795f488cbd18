// Package main serves the computed profiles over HTTP.
package main

import (
	"flag"
	"fmt"
	"os"

	"energy-value-lab/internal/api"
	"energy-value-lab/internal/config"
	"energy-value-lab/internal/logging"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srv, err := api.NewServer(cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("server setup failed")
		os.Exit(1)
	}
	if err := srv.Run(); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
