package formats

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/objmesh/pkg/encoding"
)

// OBJ format errors.
var (
	ErrLineTooLong         = errors.New("line exceeds maximum length")
	ErrMalformedNumber     = errors.New("malformed numeric field")
	ErrTooFewFaceVertices  = errors.New("face has fewer than 3 vertices")
	ErrTooManyFaceVertices = errors.New("face has more than 4 vertices (no n-gon support)")
	ErrUnsupportedIndex    = errors.New("unsupported face index")
	ErrIndexOutOfRange     = errors.New("face index out of range")
)

// DefaultMaxLineLength is the longest OBJ statement accepted when
// OBJOptions.MaxLineLength is zero.
const DefaultMaxLineLength = 512

// Component counts of the interleaved vertex record.
const (
	PositionSize = 3
	UVSize       = 2
	NormalSize   = 3
	VertexStride = PositionSize + UVSize + NormalSize
)

// OBJOptions controls OBJ parsing limits.
type OBJOptions struct {
	// MaxLineLength is the longest line (without newline) accepted.
	// Longer lines abort the parse with ErrLineTooLong.
	MaxLineLength int
}

func (o OBJOptions) withDefaults() OBJOptions {
	if o.MaxLineLength <= 0 {
		o.MaxLineLength = DefaultMaxLineLength
	}
	return o
}

// ParseError reports the source line on which parsing failed.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %v (in %q)", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Index is an optional 0-based attribute index.
// The zero value means the attribute is absent.
type Index struct {
	Value uint32
	Valid bool
}

// Get returns the index and whether it is present.
func (i Index) Get() (uint32, bool) {
	return i.Value, i.Valid
}

// String returns the index, or "-" when absent.
func (i Index) String() string {
	if !i.Valid {
		return "-"
	}
	return fmt.Sprintf("%d", i.Value)
}

// FaceVertex is one corner of a face: a mandatory position index and
// optional texture coordinate and normal indices, all 0-based.
type FaceVertex struct {
	Position uint32
	UV       Index
	Normal   Index
}

// OBJ is a parsed Wavefront OBJ geometry model.
//
// It owns the three attribute tables and three parallel index arrays with
// one entry per triangle corner. The model is read-only once ParseOBJ returns.
type OBJ struct {
	positions AttributeTable[mgl32.Vec3]
	uvs       AttributeTable[mgl32.Vec2]
	normals   AttributeTable[mgl32.Vec3]

	positionIndices []uint32
	uvIndices       []Index
	normalIndices   []Index
}

func newOBJ() *OBJ {
	return &OBJ{
		positions: newAttributeTable[mgl32.Vec3](PositionSize),
		uvs:       newAttributeTable[mgl32.Vec2](UVSize),
		normals:   newAttributeTable[mgl32.Vec3](NormalSize),
	}
}

// Positions returns the vertex position table.
func (o *OBJ) Positions() *AttributeTable[mgl32.Vec3] {
	return &o.positions
}

// UVs returns the texture coordinate table.
func (o *OBJ) UVs() *AttributeTable[mgl32.Vec2] {
	return &o.uvs
}

// Normals returns the vertex normal table.
func (o *OBJ) Normals() *AttributeTable[mgl32.Vec3] {
	return &o.normals
}

// HasUVs reports whether the model defines any texture coordinates.
func (o *OBJ) HasUVs() bool {
	return o.uvs.Len() > 0
}

// HasNormals reports whether the model defines any normals.
func (o *OBJ) HasNormals() bool {
	return o.normals.Len() > 0
}

// CornerCount returns the number of triangle corners (index array length).
func (o *OBJ) CornerCount() int {
	return len(o.positionIndices)
}

// TriangleCount returns the number of triangles after triangulation.
func (o *OBJ) TriangleCount() int {
	return len(o.positionIndices) / 3
}

// Corner returns the face-vertex reference of triangle corner i.
// Returns false if i is out of bounds.
func (o *OBJ) Corner(i int) (FaceVertex, bool) {
	if i < 0 || i >= len(o.positionIndices) {
		return FaceVertex{}, false
	}
	return FaceVertex{
		Position: o.positionIndices[i],
		UV:       o.uvIndices[i],
		Normal:   o.normalIndices[i],
	}, true
}

// Triangle returns the three corners of triangle t.
// Returns false if t is out of bounds.
func (o *OBJ) Triangle(t int) ([3]FaceVertex, bool) {
	var tri [3]FaceVertex
	if t < 0 || t >= o.TriangleCount() {
		return tri, false
	}
	for j := range tri {
		tri[j], _ = o.Corner(t*3 + j)
	}
	return tri, true
}

// PositionIndices returns a copy of the per-corner position indices.
func (o *OBJ) PositionIndices() []uint32 {
	return append([]uint32(nil), o.positionIndices...)
}

// UVIndices returns a copy of the per-corner texture coordinate indices.
func (o *OBJ) UVIndices() []Index {
	return append([]Index(nil), o.uvIndices...)
}

// NormalIndices returns a copy of the per-corner normal indices.
func (o *OBJ) NormalIndices() []Index {
	return append([]Index(nil), o.normalIndices...)
}

// Bounds returns the axis-aligned bounding box of all positions.
// Returns the zero Bounds for a model without positions.
func (o *OBJ) Bounds() Bounds {
	if o.positions.Len() == 0 {
		return Bounds{}
	}
	b := emptyBounds()
	for _, p := range o.positions.items {
		b.extend(p)
	}
	return b
}

func (o *OBJ) addCorner(fv FaceVertex) {
	o.positionIndices = append(o.positionIndices, fv.Position)
	o.uvIndices = append(o.uvIndices, fv.UV)
	o.normalIndices = append(o.normalIndices, fv.Normal)
}

// ParseOBJ parses OBJ statements (v, vt, vn, f) from raw text.
// Content ends at the first NUL byte. Any error discards the whole model
// and is returned as a *ParseError.
//
// Face indices are 1-based. A position index of 0 or below fails with
// ErrUnsupportedIndex since every corner needs a position; a texture
// coordinate or normal index of 0 means the attribute is absent.
func ParseOBJ(data []byte, opts OBJOptions) (*OBJ, error) {
	opts = opts.withDefaults()
	obj := newOBJ()

	lines := newLineScanner(encoding.TrimAtNull(data), opts.MaxLineLength)
	for lines.next() {
		raw := lines.text()
		if len(raw) < 2 {
			continue
		}
		if err := obj.parseStatement(raw); err != nil {
			text := bytes.TrimRight(raw, whitespace)
			return nil, &ParseError{Line: lines.lineNum(), Text: string(text), Err: err}
		}
	}
	if err := lines.err(); err != nil {
		return nil, &ParseError{Line: lines.lineNum(), Err: err}
	}

	return obj, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string, opts OBJOptions) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	data, err = encoding.DecodeSource(data)
	if err != nil {
		return nil, fmt.Errorf("decoding OBJ file: %w", err)
	}
	obj, err := ParseOBJ(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return obj, nil
}

// parseStatement dispatches one line of at least two bytes on its first two
// characters. Unknown statements are ignored.
func (o *OBJ) parseStatement(line []byte) error {
	args := bytes.TrimRight(line[2:], whitespace)
	switch {
	case line[0] == 'v' && isSpace(line[1]):
		var v mgl32.Vec3
		if err := readFloats(args, 0, v[:]); err != nil {
			return fmt.Errorf("vertex position: %w", err)
		}
		o.positions.append(v)
	case line[0] == 'v' && line[1] == 't':
		var vt mgl32.Vec2
		if err := readFloats(args, 0, vt[:]); err != nil {
			return fmt.Errorf("texture coordinate: %w", err)
		}
		o.uvs.append(vt)
	case line[0] == 'v' && line[1] == 'n':
		var vn mgl32.Vec3
		if err := readFloats(args, 0, vn[:]); err != nil {
			return fmt.Errorf("vertex normal: %w", err)
		}
		o.normals.append(vn)
	case line[0] == 'f' && isSpace(line[1]):
		face, err := o.parseFace(args)
		if err != nil {
			return fmt.Errorf("face: %w", err)
		}
		for _, tri := range triangulate(face) {
			for _, fv := range tri {
				o.addCorner(fv)
			}
		}
	}
	return nil
}
