// plytool is a CLI utility for inspecting, converting and rendering ASCII PLY
// meshes.
package main

import (
	"fmt"
	"os"

	"github.com/Faultbox/plyview/internal/config"
	"github.com/Faultbox/plyview/internal/logger"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code. Deferred cleanup runs before exit.
func run() int {
	// Global flags (-config, -debug, -size, ...) come before the command.
	config.ParseFlags()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		return 1
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

	return runCommand(cfg, args[0], args[1:])
}

// runCommand dispatches one subcommand and returns its exit code.
func runCommand(cfg *config.Config, command string, args []string) int {
	var err error
	switch command {
	case "info":
		err = cmdInfo(args)
	case "validate", "check":
		err = cmdValidate(args)
	case "dump":
		err = cmdDump(args)
	case "grid":
		err = cmdGrid(cfg, args)
	case "export":
		err = cmdExport(args)
	case "render":
		err = cmdRender(cfg, args)
	case "config":
		err = cmdConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return 1
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Println(`plytool - ASCII PLY mesh utility

Usage:
  plytool [global options] <command> [options] [args]

Commands:
  info <file.ply>                  Show elements, properties and mesh stats
  validate <file.ply>...           Check files parse and assemble
  dump [-n rows] <file.ply>        Print assembled vertex rows
  grid [-o out.bin] [w h]          Build a ground grid (defaults from config)
  export [-o out.bin] <file.ply>   Write the vertex buffer as raw float32 LE
  render [-o dir] <file.ply>...    Render snapshots (WebP or PNG)
  config init [path]               Write the default config file

Global options:
  -config <path>   Config file
  -debug           Debug logging
  -size <px>       Render size
  -format <fmt>    Render format (webp, png)
  -workers <n>     Parallel render jobs
  -faceted         Shade with face normals

Examples:
  plytool info models/chicken.ply
  plytool validate models/*.ply
  plytool -format png -size 256 render -o shots models/*.ply
  plytool export -o chicken.bin models/chicken.ply`)
}
