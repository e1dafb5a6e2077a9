// plyview is an interactive viewer for ASCII PLY triangle meshes.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/plyview/internal/config"
	"github.com/Faultbox/plyview/internal/logger"
	"github.com/Faultbox/plyview/internal/viewer"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code. Deferred cleanup runs before exit.
func run() int {
	// Parse CLI flags first
	config.ParseFlags()

	args := config.Args()
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "Usage: plyview [options] [model.ply]")
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	v, err := viewer.New(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		return 1
	}
	defer v.Close()

	if len(args) == 1 {
		if err := v.LoadModel(args[0]); err != nil {
			logger.Error("failed to load model", zap.String("path", args[0]), zap.Error(err))
			return 1
		}
	} else {
		logger.Info("no model given, drop a .ply file onto the window")
	}

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		return 1
	}
	return 0
}
