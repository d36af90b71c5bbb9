package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/objmesh/pkg/formats"
)

type summary struct {
	File              string      `yaml:"file"`
	Positions         int         `yaml:"positions"`
	UVs               int         `yaml:"uvs"`
	Normals           int         `yaml:"normals"`
	Triangles         int         `yaml:"triangles"`
	Corners           int         `yaml:"corners"`
	InterleavedFloats int         `yaml:"interleaved_floats"`
	HasUVs            bool        `yaml:"has_uvs"`
	HasNormals        bool        `yaml:"has_normals"`
	Bounds            *boundsInfo `yaml:"bounds,omitempty"`
}

type boundsInfo struct {
	Min  [3]float32 `yaml:"min,flow"`
	Max  [3]float32 `yaml:"max,flow"`
	Size [3]float32 `yaml:"size,flow"`
}

func summarize(file string, obj *formats.OBJ) summary {
	s := summary{
		File:              file,
		Positions:         obj.Positions().Len(),
		UVs:               obj.UVs().Len(),
		Normals:           obj.Normals().Len(),
		Triangles:         obj.TriangleCount(),
		Corners:           obj.CornerCount(),
		InterleavedFloats: obj.InterleavedLen(),
		HasUVs:            obj.HasUVs(),
		HasNormals:        obj.HasNormals(),
	}
	if obj.Positions().Len() > 0 {
		b := obj.Bounds()
		s.Bounds = &boundsInfo{Min: b.Min, Max: b.Max, Size: b.Size()}
	}
	return s
}

func writeSummary(w io.Writer, s summary, prec int) error {
	_, err := fmt.Fprintf(w, `Model:       %s
Positions:   %d
UVs:         %d
Normals:     %d
Triangles:   %d
Corners:     %d
Interleaved: %d floats (%d per vertex)
`, s.File, s.Positions, s.UVs, s.Normals, s.Triangles, s.Corners, s.InterleavedFloats, formats.VertexStride)
	if err != nil {
		return err
	}
	if s.Bounds != nil {
		_, err = fmt.Fprintf(w, "Bounds:      %s .. %s (size %s)\n",
			formatVec(s.Bounds.Min[:], prec), formatVec(s.Bounds.Max[:], prec), formatVec(s.Bounds.Size[:], prec))
	}
	return err
}

func formatFloat(v float32, prec int) string {
	return strconv.FormatFloat(float64(v), 'f', prec, 32)
}

func formatVec(v []float32, prec int) string {
	s := "("
	for i, c := range v {
		if i > 0 {
			s += ", "
		}
		s += formatFloat(c, prec)
	}
	return s + ")"
}

// sectionLimit returns how many of total entries to print.
func sectionLimit(total, limit int) int {
	if limit > 0 && limit < total {
		return limit
	}
	return total
}

func dumpModel(w io.Writer, obj *formats.OBJ, limit, prec int) {
	dumpTable(w, "Positions", obj.Positions(), limit, func(v mgl32.Vec3) string { return formatVec(v[:], prec) })
	dumpTable(w, "UVs", obj.UVs(), limit, func(v mgl32.Vec2) string { return formatVec(v[:], prec) })
	dumpTable(w, "Normals", obj.Normals(), limit, func(v mgl32.Vec3) string { return formatVec(v[:], prec) })

	n := sectionLimit(obj.TriangleCount(), limit)
	fmt.Fprintf(w, "Triangles (%d):\n", obj.TriangleCount())
	for i := 0; i < n; i++ {
		tri, _ := obj.Triangle(i)
		fmt.Fprintf(w, "  [%d] %s %s %s\n", i, formatCorner(tri[0]), formatCorner(tri[1]), formatCorner(tri[2]))
	}
	if n < obj.TriangleCount() {
		fmt.Fprintf(w, "  ... %d more\n", obj.TriangleCount()-n)
	}
}

func dumpTable[T any](w io.Writer, name string, table *formats.AttributeTable[T], limit int, format func(T) string) {
	n := sectionLimit(table.Len(), limit)
	fmt.Fprintf(w, "%s (%d):\n", name, table.Len())
	for i := 0; i < n; i++ {
		v, _ := table.At(i)
		fmt.Fprintf(w, "  [%d] %s\n", i, format(v))
	}
	if n < table.Len() {
		fmt.Fprintf(w, "  ... %d more\n", table.Len()-n)
	}
}

// formatCorner prints a face-vertex as 0-based "p/t/n", "-" for absent.
func formatCorner(fv formats.FaceVertex) string {
	return fmt.Sprintf("%d/%s/%s", fv.Position, fv.UV, fv.Normal)
}

func dumpInterleaved(w io.Writer, mesh *formats.Mesh, limit, prec int) {
	count := mesh.VertexCount()
	n := sectionLimit(count, limit)

	fmt.Fprintf(w, "Vertices (%d, stride %d, %d floats):\n", count, mesh.Stride, len(mesh.Vertices))
	for i := 0; i < n; i++ {
		rec := mesh.Vertices[i*mesh.Stride : (i+1)*mesh.Stride]
		fmt.Fprintf(w, "  [%d] pos%s uv%s nrm%s\n", i,
			formatVec(rec[0:formats.PositionSize], prec),
			formatVec(rec[formats.PositionSize:formats.PositionSize+formats.UVSize], prec),
			formatVec(rec[formats.PositionSize+formats.UVSize:], prec))
	}
	if n < count {
		fmt.Fprintf(w, "  ... %d more\n", count-n)
	}
	fmt.Fprintf(w, "Indices (%d)\n", len(mesh.Indices))
}
