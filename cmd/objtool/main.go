// objtool is a CLI utility for inspecting and converting Wavefront OBJ files.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/Faultbox/objmesh/internal/config"
	"github.com/Faultbox/objmesh/internal/logger"
	"github.com/Faultbox/objmesh/internal/source"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		os.Exit(cmdInfo(args))
	case "dump":
		os.Exit(cmdDump(args))
	case "check":
		os.Exit(cmdCheck(args))
	case "convert":
		os.Exit(cmdConvert(args))
	case "config":
		os.Exit(cmdConfig(args))
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`objtool - Wavefront OBJ mesh utility

Usage:
  objtool <command> [options] <args>

Commands:
  info <file.obj>               Show record counts, bounds and metadata
  dump <file.obj>               Print the triangulated vertex buffer
  check <file.obj>...           Parse many files in parallel and report errors
  convert <in.obj> <out.obj>    Write a canonical triangulated copy
  config [path]                 Print the effective config, or save it to path

Common options:
  -config <path>    Config file (default ./objtool.yaml)
  -debug            Enable debug logging
  -log-file <path>  Also write logs to a rotated file
  -encoding <name>  Input encoding: utf-8 or euc-kr
  -format <name>    dump output: text or yaml
  -precision <n>    Coordinate decimals, -1 for shortest exact
  -workers <n>      check: parallel parse workers
  -no-progress      check: disable the progress bar
  -cpu-profile      Record ./cpu.pprof profile

Examples:
  objtool info cube.obj
  objtool dump -format yaml cube.obj
  objtool check -workers 4 models/*.obj
  objtool convert -precision 6 cube.obj cube_tri.obj
  objtool config -workers 2 ./objtool.yaml`)
}

// session holds what every subcommand needs after flag parsing.
type session struct {
	name string
	cfg  *config.Config
	args []string
	stop func()
}

func (s *session) sourceOptions() source.Options {
	return source.Options{Encoding: s.cfg.Input.Encoding}
}

func (s *session) close() {
	s.stop()
	logger.Sync()
}

// start parses the subcommand flags, loads the config, initializes logging
// and starts the CPU profiler when requested.
func start(name string, args []string) (*session, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	fs.Parse(args)

	cfg, err := flags.Load()
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	s := &session{name: name, cfg: cfg, args: fs.Args(), stop: func() {}}
	if flags.CPUProfile {
		p := profile.Start(profile.ProfilePath("."), profile.Quiet)
		s.stop = p.Stop
	}
	return s, nil
}

// fail logs err once the logger is running.
func (s *session) fail(err error) int {
	logger.Error("command failed", zap.String("command", s.name), zap.Error(err))
	return 1
}

func fail(err error) int {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}
