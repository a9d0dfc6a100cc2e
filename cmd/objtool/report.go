package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/cheggaaa/pb.v1"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/objmesh/internal/config"
	"github.com/Faultbox/objmesh/internal/logger"
	"github.com/Faultbox/objmesh/internal/source"
	"github.com/Faultbox/objmesh/pkg/math"
	"github.com/Faultbox/objmesh/pkg/obj"
)

// errSameFile is returned when convert would overwrite its input.
var errSameFile = errors.New("input and output are the same file")

type fileInfo struct {
	Path      string
	Size      int
	Stats     obj.Stats
	Smoothing *bool
	Model     *obj.Model
}

func loadInfo(path string, opts source.Options) (*fileInfo, error) {
	data, err := source.Read(path, opts)
	if err != nil {
		return nil, err
	}
	o, err := obj.ParseOBJ(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	model, err := o.BuildModel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &fileInfo{
		Path:      path,
		Size:      len(data),
		Stats:     o.Stats(),
		Smoothing: o.Smoothing,
		Model:     model,
	}, nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func writeInfo(w io.Writer, info *fileInfo) {
	m := info.Model
	min, max := m.Bounds()

	smoothing := "(none)"
	if info.Smoothing != nil {
		smoothing = strconv.FormatBool(*info.Smoothing)
	}

	fmt.Fprintf(w, "File:      %s\n", info.Path)
	fmt.Fprintf(w, "Size:      %d bytes\n", info.Size)
	fmt.Fprintf(w, "Object:    %s\n", m.Name)
	fmt.Fprintf(w, "Mtllib:    %s\n", orNone(m.MaterialLib))
	fmt.Fprintf(w, "Material:  %s\n", orNone(m.Material))
	fmt.Fprintf(w, "Group:     %s\n", orNone(m.Group))
	fmt.Fprintf(w, "Smoothing: %s\n", smoothing)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Records:")
	fmt.Fprintf(w, "  %-10s %d\n", "v", info.Stats.Positions)
	fmt.Fprintf(w, "  %-10s %d\n", "vt", info.Stats.TexCoords)
	fmt.Fprintf(w, "  %-10s %d\n", "vn", info.Stats.Normals)
	fmt.Fprintf(w, "  %-10s %d\n", "f", info.Stats.Faces)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Mesh:")
	fmt.Fprintf(w, "  Vertices:  %d\n", len(m.Vertices))
	fmt.Fprintf(w, "  Triangles: %d\n", m.TriangleCount())
	fmt.Fprintf(w, "  Bounds:    %v - %v\n", min, max)
	fmt.Fprintf(w, "  Size:      %v\n", max.Sub(min))
}

func formatVec(v math.Vec3, n, precision int) string {
	comps := [3]float32{v.X, v.Y, v.Z}
	s := ""
	for i, c := range comps[:n] {
		if i > 0 {
			s += " "
		}
		s += strconv.FormatFloat(float64(c), 'f', precision, 32)
	}
	return s
}

func writeDump(w io.Writer, m *obj.Model, format string, precision int) error {
	if format == config.FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	}

	fmt.Fprintf(w, "object %s\n", m.Name)
	fmt.Fprintf(w, "vertices %d\n", len(m.Vertices))
	for i, v := range m.Vertices {
		fmt.Fprintf(w, "  %4d  pos %s  uv %s\n", i,
			formatVec(v.Position, 3, precision),
			formatVec(v.TexCoord, 2, precision))
	}
	fmt.Fprintf(w, "triangles %d\n", m.TriangleCount())
	for t := 0; t < m.TriangleCount(); t++ {
		fmt.Fprintf(w, "  %4d  %d %d %d\n", t, m.Triangles[3*t], m.Triangles[3*t+1], m.Triangles[3*t+2])
	}
	return nil
}

func writeConfig(w io.Writer, cfg *config.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

type checkResult struct {
	Path      string
	Triangles int
	Err       error
}

// checkFiles loads every path with at most workers files in flight. Results
// keep the order of paths. bar may be nil.
func checkFiles(paths []string, loader *source.Loader, workers int, bar *pb.ProgressBar) []checkResult {
	results := make([]checkResult, len(paths))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i].Path = path
			model, err := loader.Load(path)
			if err != nil {
				logger.Warn("check failed", zap.String("path", path), zap.Error(err))
				results[i].Err = err
			} else {
				results[i].Triangles = model.TriangleCount()
			}
			if bar != nil {
				bar.Increment()
			}
			return nil
		})
	}
	g.Wait()

	return results
}

// writeCheckReport prints one line per result and returns the failure count.
func writeCheckReport(w io.Writer, results []checkResult) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(w, "FAIL  %s: %v\n", r.Path, r.Err)
			continue
		}
		fmt.Fprintf(w, "ok    %s (%d triangles)\n", r.Path, r.Triangles)
	}
	fmt.Fprintf(w, "\n%d files, %d failed\n", len(results), failed)
	return failed
}

func convertFile(in, out string, opts source.Options, precision int) error {
	if in == out {
		return fmt.Errorf("%w: %s", errSameFile, in)
	}

	model, err := source.Load(in, opts)
	if err != nil {
		return err
	}

	writeOpts := obj.WriteOptions{
		Precision: precision,
		Header:    "converted by objtool from " + filepath.Base(in),
	}
	return source.Save(out, model, writeOpts, opts)
}
