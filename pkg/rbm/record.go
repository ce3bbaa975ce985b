package rbm

import (
	"fmt"

	rmath "github.com/Faultbox/rbm-export/pkg/math"
)

// TexturePath is one entry of a block's texture table. An empty path is
// an unconnected slot and is written as a zero length.
type TexturePath struct {
	Slot string
	Path string
}

// Len returns the UTF-8 byte length written before the path.
func (t TexturePath) Len() int {
	return len(t.Path)
}

// Record is one exported mesh with its material, ready to encode.
// Records are built by BuildRecord and not modified afterwards.
type Record struct {
	Name    string
	Variant Variant
	// Flags is the CARPAINTMM flags field, 0 for other variants.
	Flags uint32

	Vertices []rmath.Vec3
	Faces    [][3]uint16
	UV1      []rmath.Vec2
	UV2      []rmath.Vec2
	UV3      []rmath.Vec2
	Normals  []float32 // packed, see CompressNormal
	Tangents []float32 // packed, see CompressTangent

	Params   Params
	Textures []TexturePath
}

// IndexCount returns the number of triangle indices (faces * 3).
func (r *Record) IndexCount() int {
	return len(r.Faces) * 3
}

// Validate checks that the parallel vertex arrays agree and that the mesh
// fits the 16-bit index encoding.
func (r *Record) Validate() error {
	if _, ok := variantNames[r.Variant]; !ok {
		return fmt.Errorf("%w: %s has variant %s", ErrNoSupportedVariant, r.Name, r.Variant)
	}

	n := len(r.Vertices)
	if n > MaxVertices {
		return fmt.Errorf("%w: %s has %d vertices", ErrIndexOverflow, r.Name, n)
	}

	lengths := []struct {
		name string
		len  int
	}{
		{"uv1", len(r.UV1)},
		{"uv2", len(r.UV2)},
		{"uv3", len(r.UV3)},
		{"normals", len(r.Normals)},
		{"tangents", len(r.Tangents)},
	}
	for _, l := range lengths {
		if l.len != n {
			return fmt.Errorf("%w: %s has %d vertices but %d %s", ErrShapeMismatch, r.Name, n, l.len, l.name)
		}
	}

	for i, face := range r.Faces {
		for _, idx := range face {
			if int(idx) >= n {
				return fmt.Errorf("%w: %s face %d references vertex %d of %d", ErrIndexOverflow, r.Name, i, idx, n)
			}
		}
	}

	if want := len(r.Variant.TextureSlots()); len(r.Textures) != want {
		return fmt.Errorf("%w: %s has %d texture slots, %s needs %d", ErrShapeMismatch, r.Name, len(r.Textures), r.Variant, want)
	}
	return nil
}
