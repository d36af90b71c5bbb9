package formats

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

func emptyBounds() Bounds {
	inf := float32(math.Inf(1))
	return Bounds{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

func (b *Bounds) extend(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}

// Size returns the extent of the box on each axis.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Mesh is an interleaved, indexed vertex buffer ready for GPU upload.
type Mesh struct {
	// Vertices holds Stride floats per vertex: position, uv, normal.
	Vertices []float32
	// Indices holds one entry per triangle corner.
	Indices []uint32
	Stride  int
	Bounds  Bounds
}

// VertexCount returns the number of vertex records.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / m.Stride
}

// InterleavedLen returns the number of floats Interleave produces.
func (o *OBJ) InterleavedLen() int {
	return len(o.positionIndices) * VertexStride
}

// Interleave emits one 8-float record (position, uv, normal) per triangle
// corner. A channel the model has no data for is zero-filled, as is a corner
// that does not reference it. Returns nil for a model without triangles.
func (o *OBJ) Interleave() []float32 {
	n := o.InterleavedLen()
	if n == 0 {
		return nil
	}

	hasUV := o.HasUVs()
	hasNormal := o.HasNormals()

	out := make([]float32, 0, n)
	for i, pi := range o.positionIndices {
		p := o.positions.items[pi]
		out = append(out, p[0], p[1], p[2])

		var uv mgl32.Vec2
		if idx, ok := o.uvIndices[i].Get(); ok && hasUV {
			uv = o.uvs.items[idx]
		}
		out = append(out, uv[0], uv[1])

		var nrm mgl32.Vec3
		if idx, ok := o.normalIndices[i].Get(); ok && hasNormal {
			nrm = o.normals.items[idx]
		}
		out = append(out, nrm[0], nrm[1], nrm[2])
	}
	return out
}

// BuildMesh interleaves the model and pairs it with a sequential index
// buffer (corner i uses vertex i). Returns nil for a model without triangles.
func (o *OBJ) BuildMesh() *Mesh {
	vertices := o.Interleave()
	if len(vertices) == 0 {
		return nil
	}

	indices := make([]uint32, len(o.positionIndices))
	bounds := emptyBounds()
	for i, pi := range o.positionIndices {
		indices[i] = uint32(i)
		bounds.extend(o.positions.items[pi])
	}

	return &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Stride:   VertexStride,
		Bounds:   bounds,
	}
}
