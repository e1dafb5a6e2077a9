package main

import (
	"bufio"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/plyview/internal/config"
	"github.com/Faultbox/plyview/internal/logger"
	"github.com/Faultbox/plyview/pkg/mesh"
	"github.com/Faultbox/plyview/pkg/ply"
)

func cmdInfo(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: plytool info <file.ply>")
	}
	path := args[0]

	m, err := ply.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	fmt.Printf("File: %s\n", path)
	fmt.Printf("Elements: %d\n", len(m.Elements()))
	for _, name := range m.Elements() {
		e, _ := m.Element(name)
		fmt.Printf("\n  %s (%d)\n", name, e.Count())
		for _, p := range e.Properties() {
			if p.Kind == ply.ListProperty {
				fmt.Printf("    %-12s list %s %s\n", p.Name, p.CountType, p.Type)
			} else {
				fmt.Printf("    %-12s %s\n", p.Name, p.Type)
			}
		}
	}

	buf, err := mesh.Assemble(m)
	if err != nil {
		fmt.Printf("\nMesh: not renderable (%s): %v\n", errorClass(err), err)
		return nil
	}
	lo, hi := buf.Bounds()
	fmt.Printf("\nMesh:\n")
	fmt.Printf("  Triangles: %d\n", buf.Triangles())
	fmt.Printf("  Vertices:  %d (%d bytes)\n", buf.Vertices, buf.Vertices*mesh.StrideBytes)
	fmt.Printf("  Bounds:    [%g %g %g] - [%g %g %g]\n", lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
	return nil
}

func cmdValidate(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: plytool validate <file.ply>...")
	}

	failed := 0
	for _, path := range args {
		_, buf, err := loadMesh(path)
		if err != nil {
			failed++
			fmt.Printf("FAIL  %s  [%s] %v\n", path, errorClass(err), err)
			continue
		}
		fmt.Printf("OK    %s  (%d triangles)\n", path, buf.Triangles())
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

func cmdDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	limit := fs.Int("n", 0, "Rows to print (0 = all)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("usage: plytool dump [-n rows] <file.ply>")
	}

	_, buf, err := loadMesh(fs.Arg(0))
	if err != nil {
		return err
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	return writeRows(w, buf, *limit)
}

// writeRows prints one buffer row per line, grouped by triangle.
func writeRows(w io.Writer, buf *mesh.Buffer, limit int) error {
	n := buf.Vertices
	if limit > 0 && limit < n {
		n = limit
	}

	fmt.Fprintf(w, "# %6s  %-28s %-28s %-28s %s\n", "row", "position", "normal", "face normal", "st")
	for i := 0; i < n; i++ {
		r := buf.Row(i)
		if i > 0 && i%3 == 0 {
			fmt.Fprintln(w)
		}
		if _, err := fmt.Fprintf(w, "%8d  %-28s %-28s %-28s %s\n", i,
			fmtFloats(r[mesh.PositionOffset:mesh.PositionOffset+3]),
			fmtFloats(r[mesh.NormalOffset:mesh.NormalOffset+3]),
			fmtFloats(r[mesh.FaceNormalOffset:mesh.FaceNormalOffset+3]),
			fmtFloats(r[mesh.TexCoordOffset:mesh.TexCoordOffset+2]),
		); err != nil {
			return err
		}
	}
	if n < buf.Vertices {
		fmt.Fprintf(w, "... %d more rows\n", buf.Vertices-n)
	}
	return nil
}

func fmtFloats(v []float32) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = strconv.FormatFloat(float64(f), 'g', 5, 32)
	}
	return strings.Join(parts, " ")
}

func cmdGrid(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("grid", flag.ExitOnError)
	output := fs.String("o", "", "Write the buffer to this file")
	fs.Parse(args)

	width, height := cfg.Grid.Width, cfg.Grid.Height
	switch fs.NArg() {
	case 0:
	case 2:
		var err error
		if width, err = strconv.Atoi(fs.Arg(0)); err != nil {
			return fmt.Errorf("invalid width %q", fs.Arg(0))
		}
		if height, err = strconv.Atoi(fs.Arg(1)); err != nil {
			return fmt.Errorf("invalid height %q", fs.Arg(1))
		}
	default:
		return errors.New("usage: plytool grid [-o out.bin] [width height]")
	}

	buf, err := mesh.Grid(width, height)
	if err != nil {
		return err
	}

	lo, hi := buf.Bounds()
	fmt.Printf("Grid %dx%d: %d triangles, bounds [%g %g] - [%g %g]\n",
		width, height, buf.Triangles(), lo[0], lo[1], hi[0], hi[1])

	if *output != "" {
		if err := exportFile(*output, buf); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", *output)
	}
	return nil
}

func cmdExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	output := fs.String("o", "", "Output file (default: <input>.bin)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("usage: plytool export [-o out.bin] <file.ply>")
	}
	input := fs.Arg(0)

	_, buf, err := loadMesh(input)
	if err != nil {
		return err
	}

	path := *output
	if path == "" {
		path = strings.TrimSuffix(input, ".ply") + ".bin"
	}
	if err := exportFile(path, buf); err != nil {
		return err
	}

	logger.Info("exported buffer",
		zap.String("path", path),
		zap.Int("vertices", buf.Vertices),
		zap.Int("stride", mesh.StrideBytes),
	)
	fmt.Printf("Wrote %s (%d rows x %d bytes)\n", path, buf.Vertices, mesh.StrideBytes)
	return nil
}

func exportFile(path string, buf *mesh.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := writeBuffer(w, buf); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeBuffer writes the buffer as packed little-endian float32 rows.
func writeBuffer(w io.Writer, buf *mesh.Buffer) error {
	return binary.Write(w, binary.LittleEndian, buf.Data)
}

// cmdConfig writes the effective config, including global flag overrides.
func cmdConfig(cfg *config.Config, args []string) error {
	if len(args) < 1 || args[0] != "init" {
		return errors.New("usage: plytool config init [path]")
	}

	if len(args) > 1 {
		if err := cfg.SaveTo(args[1]); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", args[1])
		return nil
	}

	path, err := cfg.Save()
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
