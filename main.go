package main

import (
	"flag"
	"log/slog"

	"github.com/soocke/histoedit-go/app"
	"github.com/soocke/histoedit-go/config"
)

func main() {
	cfgFlag := flag.String("config", "", "config file (default: per-user config dir)")
	debugFlag := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	// Bootstrap logger until the config level is known
	logger := NewLogger(slog.LevelInfo)

	cfgPath := *cfgFlag
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			logger.Error("config path unavailable", "error", err)
			p = "histoedit.json"
		}
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Error("config load failed, using defaults", "path", cfgPath, "error", err)
	}
	if *debugFlag {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger = NewLogger(level)
	logger.Info("starting", "config", cfgPath, "debug", cfg.Debug)

	application := app.NewApp("Histogram Viewer", cfg, cfgPath, logger)
	application.Start(flag.Arg(0))
}
