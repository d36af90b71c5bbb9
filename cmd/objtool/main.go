// objtool is a CLI utility for inspecting Wavefront OBJ models and
// exporting renderer-ready vertex buffers.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/objmesh/internal/assets"
	"github.com/Faultbox/objmesh/internal/config"
	"github.com/Faultbox/objmesh/internal/logger"
)

// errUsage marks errors caused by bad command-line usage.
var errUsage = errors.New("usage")

func main() {
	config.ParseFlags()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	code := run(cfg, args[0], args[1:])
	logger.Sync()
	os.Exit(code)
}

func run(cfg *config.Config, command string, args []string) int {
	mgr := assets.NewManager(logger.Log)
	defer mgr.Close()

	for _, dir := range cfg.Data.SearchPaths {
		if err := mgr.AddSearchPath(dir); err != nil {
			logger.Warn("skipping search path", zap.String("dir", dir), zap.Error(err))
		}
	}

	app := &app{cfg: cfg, assets: mgr, out: os.Stdout}
	logger.Debug("running command",
		zap.String("command", command),
		zap.Strings("args", args),
		zap.Strings("search_paths", cfg.Data.SearchPaths))

	var err error
	switch command {
	case "info":
		err = app.cmdInfo(args)
	case "dump":
		err = app.cmdDump(args)
	case "interleave", "export":
		err = app.cmdInterleave(args)
	case "config":
		err = app.cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return 1
	}

	if err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
		} else {
			logger.Error("command failed", zap.String("command", command), zap.Error(err))
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}

	hits, misses := mgr.Stats()
	logger.Debug("source cache", zap.Int("hits", hits), zap.Int("misses", misses))
	return 0
}

func printUsage() {
	fmt.Println(`objtool - Wavefront OBJ inspection and export utility

Usage:
  objtool [global flags] <command> [options]

Global flags:
  -config <file>          Config file (default ./objtool.yaml, then user config dir)
  -debug                  Enable debug logging
  -data <dirs>            Comma-separated model search paths
  -max-line-length <n>    Longest OBJ line accepted
  -format <text|yaml>     Output format for info
  -precision <n>          Decimals printed for floats

Commands:
  info <file.obj>                         Show model summary
  dump <file.obj> [-n N]                  Print attribute tables and triangles
  interleave <file.obj> [-n N]            Print interleaved vertex records
             [-o vertices.bin]            Write vertices as little-endian float32
             [-indices indices.bin]       Write indices as little-endian uint32
  config [-save <file>]                   Print (or save) the effective config

Examples:
  objtool info cube.obj
  objtool -format yaml info models/cube.obj
  objtool dump -n 10 cube.obj
  objtool interleave -o cube.vbo -indices cube.ibo cube.obj`)
}
