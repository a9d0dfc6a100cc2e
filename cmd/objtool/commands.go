package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/cheggaaa/pb.v1"

	"github.com/Faultbox/objmesh/internal/logger"
	"github.com/Faultbox/objmesh/internal/source"
)

func cmdInfo(args []string) int {
	s, err := start("info", args)
	if err != nil {
		return fail(err)
	}
	defer s.close()

	if len(s.args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool info <file.obj>")
		return 1
	}

	info, err := loadInfo(s.args[0], s.sourceOptions())
	if err != nil {
		return s.fail(err)
	}
	writeInfo(os.Stdout, info)
	return 0
}

func cmdDump(args []string) int {
	s, err := start("dump", args)
	if err != nil {
		return fail(err)
	}
	defer s.close()

	if len(s.args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool dump [-format text|yaml] <file.obj>")
		return 1
	}

	model, err := source.Load(s.args[0], s.sourceOptions())
	if err != nil {
		return s.fail(err)
	}
	if err := writeDump(os.Stdout, model, s.cfg.Output.Format, s.cfg.Output.Precision); err != nil {
		return s.fail(err)
	}
	return 0
}

func cmdCheck(args []string) int {
	s, err := start("check", args)
	if err != nil {
		return fail(err)
	}
	defer s.close()

	if len(s.args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool check [-workers n] <file.obj>...")
		return 1
	}

	var bar *pb.ProgressBar
	if s.cfg.Check.Progress {
		bar = pb.New(len(s.args)).Prefix("  - check ").SetMaxWidth(130)
		bar.Output = os.Stderr
		bar.ShowTimeLeft = false
		bar.Start()
	}

	loader := source.NewLoader(s.sourceOptions())
	results := checkFiles(s.args, loader, s.cfg.Check.Workers, bar)
	if bar != nil {
		bar.Finish()
	}

	failed := writeCheckReport(os.Stdout, results)
	hits, misses := loader.Cache().Stats()
	logger.Debug("check finished",
		zap.Int("files", len(results)),
		zap.Int("failed", failed),
		zap.Int("cache_hits", hits),
		zap.Int("cache_misses", misses))
	if failed > 0 {
		return 1
	}
	return 0
}

func cmdConvert(args []string) int {
	s, err := start("convert", args)
	if err != nil {
		return fail(err)
	}
	defer s.close()

	if len(s.args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: objtool convert [-precision n] <in.obj> <out.obj>")
		return 1
	}

	in, out := filepath.Clean(s.args[0]), filepath.Clean(s.args[1])
	if err := convertFile(in, out, s.sourceOptions(), s.cfg.Output.Precision); err != nil {
		return s.fail(err)
	}
	logger.Info("converted", zap.String("in", in), zap.String("out", out))
	return 0
}

func cmdConfig(args []string) int {
	s, err := start("config", args)
	if err != nil {
		return fail(err)
	}
	defer s.close()

	if len(s.args) < 1 {
		if err := writeConfig(os.Stdout, s.cfg); err != nil {
			return s.fail(err)
		}
		return 0
	}

	if err := s.cfg.SaveTo(s.args[0]); err != nil {
		return s.fail(err)
	}
	logger.Info("saved config", zap.String("path", s.args[0]))
	return 0
}
