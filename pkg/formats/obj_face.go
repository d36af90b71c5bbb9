package formats

import "fmt"

const (
	minFaceVertices = 3
	maxFaceVertices = 4
)

// parseFace parses the face-vertex tokens of an "f" statement (the text
// after "f "). Each token is "p", "p/t", "p/t/n" or "p//n" with 1-based
// indices; texture and normal fields may be empty only when followed by '/'.
func (o *OBJ) parseFace(fields []byte) ([]FaceVertex, error) {
	var face [maxFaceVertices]FaceVertex
	n := 0

	pos := 0
	for {
		pos = skipSpace(fields, pos)
		if pos >= len(fields) {
			break
		}
		if n == maxFaceVertices {
			return nil, ErrTooManyFaceVertices
		}

		fv, next, err := o.parseFaceVertex(fields, pos)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", n+1, err)
		}
		face[n] = fv
		n++
		pos = next
	}

	if n < minFaceVertices {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewFaceVertices, n)
	}
	return face[:n], nil
}

// parseFaceVertex parses one face-vertex token starting at pos.
func (o *OBJ) parseFaceVertex(line []byte, pos int) (FaceVertex, int, error) {
	var fv FaceVertex

	raw, ok, pos, err := scanIndex(line, pos)
	if err != nil {
		return fv, pos, fmt.Errorf("position: %w", err)
	}
	if !ok {
		return fv, pos, fmt.Errorf("%w: missing position index", ErrMalformedNumber)
	}
	if fv.Position, err = resolvePosition(raw, o.positions.Len()); err != nil {
		return fv, pos, err
	}

	if pos < len(line) && line[pos] == '/' {
		if fv.UV, pos, err = o.parseOptionalIndex(line, pos+1, o.uvs.Len(), "texture coordinate"); err != nil {
			return fv, pos, err
		}
		if pos < len(line) && line[pos] == '/' {
			if fv.Normal, pos, err = o.parseOptionalIndex(line, pos+1, o.normals.Len(), "normal"); err != nil {
				return fv, pos, err
			}
		}
	}

	if pos < len(line) && !isSpace(line[pos]) {
		return fv, pos, fmt.Errorf("%w: unexpected %q", ErrMalformedNumber, line[pos])
	}
	return fv, pos, nil
}

// parseOptionalIndex parses a texture coordinate or normal sub-field.
// An empty field is only allowed between two '/' characters.
func (o *OBJ) parseOptionalIndex(line []byte, pos, count int, what string) (Index, int, error) {
	raw, ok, pos, err := scanIndex(line, pos)
	if err != nil {
		return Index{}, pos, fmt.Errorf("%s: %w", what, err)
	}
	if !ok {
		if pos < len(line) && line[pos] == '/' {
			return Index{}, pos, nil
		}
		return Index{}, pos, fmt.Errorf("%w: empty %s index", ErrMalformedNumber, what)
	}
	idx, err := resolveOptional(raw, count)
	if err != nil {
		return Index{}, pos, fmt.Errorf("%s: %w", what, err)
	}
	return idx, pos, nil
}

// resolvePosition converts a 1-based position index to 0-based and checks
// it against the positions defined so far.
func resolvePosition(raw, count int) (uint32, error) {
	if raw <= 0 {
		return 0, fmt.Errorf("%w: position %d (indices are 1-based, relative indices unsupported)", ErrUnsupportedIndex, raw)
	}
	if raw > count {
		return 0, fmt.Errorf("%w: position %d, %d defined", ErrIndexOutOfRange, raw, count)
	}
	return uint32(raw - 1), nil
}

// resolveOptional converts a 1-based texture coordinate or normal index to
// 0-based. Zero means the attribute is absent.
func resolveOptional(raw, count int) (Index, error) {
	switch {
	case raw == 0:
		return Index{}, nil
	case raw < 0:
		return Index{}, fmt.Errorf("%w: %d (relative indices unsupported)", ErrUnsupportedIndex, raw)
	case raw > count:
		return Index{}, fmt.Errorf("%w: %d, %d defined", ErrIndexOutOfRange, raw, count)
	}
	return Index{Value: uint32(raw - 1), Valid: true}, nil
}

// triangulate splits a 3- or 4-vertex face into triangles with a fan from
// the first vertex: (a,b,c) and (a,c,d).
func triangulate(face []FaceVertex) [][3]FaceVertex {
	tris := make([][3]FaceVertex, 0, len(face)-2)
	for i := 1; i+1 < len(face); i++ {
		tris = append(tris, [3]FaceVertex{face[0], face[i], face[i+1]})
	}
	return tris
}
