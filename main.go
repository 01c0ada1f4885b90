package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"DoodleBoard/internal/config"
	"DoodleBoard/internal/ui"
)

func main() {
	fs := flag.NewFlagSet("doodleboard", flag.ExitOnError)
	configPath := fs.String("config", "", "path to a TOML config file (default $"+config.EnvPath+" or the user config dir)")
	printConfig := fs.Bool("print-config", false, "print the effective configuration and exit")
	fs.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *printConfig {
		if err := cfg.Encode(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	log.Printf("Starting DoodleBoard (%dx%d canvas, saving to %s)", cfg.Width, cfg.Height, cfg.SaveDir)
	ui.RunApp(cfg)
}
