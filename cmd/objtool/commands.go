package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/objmesh/internal/assets"
	"github.com/Faultbox/objmesh/internal/config"
	"github.com/Faultbox/objmesh/internal/logger"
	"github.com/Faultbox/objmesh/pkg/formats"
)

type app struct {
	cfg    *config.Config
	assets *assets.Manager
	out    io.Writer
}

func (a *app) load(path string) (*formats.OBJ, error) {
	return a.assets.LoadOBJ(path, a.cfg.OBJOptions())
}

func (a *app) cmdInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%w: objtool info <file.obj>", errUsage)
	}

	obj, err := a.load(fs.Arg(0))
	if err != nil {
		return err
	}

	s := summarize(fs.Arg(0), obj)
	if a.cfg.Output.Format == config.FormatYAML {
		enc := yaml.NewEncoder(a.out)
		defer enc.Close()
		return enc.Encode(s)
	}
	return writeSummary(a.out, s, a.cfg.Output.Precision)
}

func (a *app) cmdDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	limit := fs.Int("n", 0, "Limit each section to N entries (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%w: objtool dump [-n N] <file.obj>", errUsage)
	}

	obj, err := a.load(fs.Arg(0))
	if err != nil {
		return err
	}

	w := bufio.NewWriter(a.out)
	dumpModel(w, obj, *limit, a.cfg.Output.Precision)
	return w.Flush()
}

func (a *app) cmdInterleave(args []string) error {
	fs := flag.NewFlagSet("interleave", flag.ContinueOnError)
	limit := fs.Int("n", 0, "Limit printed records to N (0 = all)")
	vertexPath := fs.String("o", "", "Write vertices to file as little-endian float32")
	indexPath := fs.String("indices", "", "Write indices to file as little-endian uint32")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%w: objtool interleave [-n N] [-o file] [-indices file] <file.obj>", errUsage)
	}

	obj, err := a.load(fs.Arg(0))
	if err != nil {
		return err
	}

	mesh := obj.BuildMesh()
	if mesh == nil {
		logger.Warn("model has no triangles", zap.String("path", fs.Arg(0)))
		fmt.Fprintln(a.out, "(no triangles)")
		return nil
	}

	if *vertexPath == "" && *indexPath == "" {
		w := bufio.NewWriter(a.out)
		dumpInterleaved(w, mesh, *limit, a.cfg.Output.Precision)
		return w.Flush()
	}

	if *vertexPath != "" {
		if err := writeBinaryFile(*vertexPath, mesh.Vertices); err != nil {
			return fmt.Errorf("writing vertices: %w", err)
		}
		logger.Info("vertices written",
			zap.String("path", *vertexPath),
			zap.Int("vertices", mesh.VertexCount()),
			zap.Int("floats", len(mesh.Vertices)))
	}
	if *indexPath != "" {
		if err := writeBinaryFile(*indexPath, mesh.Indices); err != nil {
			return fmt.Errorf("writing indices: %w", err)
		}
		logger.Info("indices written",
			zap.String("path", *indexPath),
			zap.Int("indices", len(mesh.Indices)))
	}

	fmt.Fprintf(a.out, "%d vertices (%d floats, stride %d), %d indices\n",
		mesh.VertexCount(), len(mesh.Vertices), mesh.Stride, len(mesh.Indices))
	return nil
}

func (a *app) cmdConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	savePath := fs.String("save", "", "Write the effective config to file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *savePath != "" {
		if err := a.cfg.SaveTo(*savePath); err != nil {
			return err
		}
		logger.Info("config saved", zap.String("path", *savePath))
		return nil
	}

	data, err := a.cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = a.out.Write(data)
	return err
}

// writeBinaryFile writes a slice of fixed-size values in little-endian order.
func writeBinaryFile(path string, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, data); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
