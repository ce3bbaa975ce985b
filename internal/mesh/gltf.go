// Package mesh provides the mesh sources of a scene: glTF 2.0 files and
// meshes written inline in the scene manifest.
package mesh

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	rmath "github.com/Faultbox/rbm-export/pkg/math"
	"github.com/Faultbox/rbm-export/pkg/rbm"
)

// Mesh source errors.
var (
	ErrMeshNotFound     = errors.New("mesh not found")
	ErrNotTriangulated  = errors.New("primitive is not a triangle list")
	ErrMissingPositions = errors.New("primitive has no POSITION attribute")
	ErrInvalidAccessor  = errors.New("invalid accessor index")
)

// Cache keeps opened glTF documents so objects sharing a file read it once.
type Cache struct {
	docs map[string]*gltf.Document
}

// NewCache returns an empty document cache.
func NewCache() *Cache {
	return &Cache{docs: make(map[string]*gltf.Document)}
}

// Open returns the document at path, reading it on first use.
func (c *Cache) Open(path string) (*gltf.Document, error) {
	if doc, ok := c.docs[path]; ok {
		return doc, nil
	}
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening glTF %s: %w", path, err)
	}
	c.docs[path] = doc
	return doc, nil
}

// Load reads the named mesh of the glTF file at path. An empty name
// selects the first mesh.
func (c *Cache) Load(path, name string) (*rbm.Mesh, error) {
	doc, err := c.Open(path)
	if err != nil {
		return nil, err
	}
	m, err := FromDocument(doc, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// LoadGLTF reads one mesh from a .gltf or .glb file.
func LoadGLTF(path, name string) (*rbm.Mesh, error) {
	return NewCache().Load(path, name)
}

// FromDocument merges every primitive of the selected mesh into one
// vertex space.
func FromDocument(doc *gltf.Document, name string) (*rbm.Mesh, error) {
	var src *gltf.Mesh
	for _, m := range doc.Meshes {
		if name == "" || m.Name == name {
			src = m
			break
		}
	}
	if src == nil {
		return nil, fmt.Errorf("%w: %q", ErrMeshNotFound, name)
	}

	out := &rbm.Mesh{}
	for i, prim := range src.Primitives {
		if err := appendPrimitive(doc, prim, out); err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", src.Name, i, err)
		}
	}
	// Primitives without a channel another primitive has get zero UVs.
	for ch := range out.UVs {
		padUVs(out, ch, len(out.Positions))
	}
	return out, nil
}

func accessor(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAccessor, idx)
	}
	return doc.Accessors[idx], nil
}

// appendPrimitive adds one triangle primitive to out. Attributes the
// primitive lacks are filled with defaults so all arrays stay parallel.
func appendPrimitive(doc *gltf.Document, prim *gltf.Primitive, out *rbm.Mesh) error {
	if prim.Mode != gltf.PrimitiveTriangles {
		return ErrNotTriangulated
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return ErrMissingPositions
	}
	acr, err := accessor(doc, posIdx)
	if err != nil {
		return err
	}
	positions, err := modeler.ReadPosition(doc, acr, nil)
	if err != nil {
		return fmt.Errorf("reading positions: %w", err)
	}

	base := len(out.Positions)
	n := len(positions)
	for _, p := range positions {
		out.Positions = append(out.Positions, rmath.V3(p))
	}

	normals := make([][3]float32, n)
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if acr, err = accessor(doc, idx); err != nil {
			return err
		}
		if normals, err = modeler.ReadNormal(doc, acr, nil); err != nil {
			return fmt.Errorf("reading normals: %w", err)
		}
	}

	tangents := make([][4]float32, n)
	for i := range tangents {
		tangents[i][3] = 1
	}
	if idx, ok := prim.Attributes[gltf.TANGENT]; ok {
		if acr, err = accessor(doc, idx); err != nil {
			return err
		}
		if tangents, err = modeler.ReadTangent(doc, acr, nil); err != nil {
			return fmt.Errorf("reading tangents: %w", err)
		}
	}

	if len(normals) != n || len(tangents) != n {
		return fmt.Errorf("%w: %d positions, %d normals, %d tangents", rbm.ErrShapeMismatch, n, len(normals), len(tangents))
	}
	for i := 0; i < n; i++ {
		out.Normals = append(out.Normals, rmath.V3(normals[i]))
		out.Tangents = append(out.Tangents, rmath.Vec3{X: tangents[i][0], Y: tangents[i][1], Z: tangents[i][2]})
		out.BitangentSigns = append(out.BitangentSigns, tangents[i][3])
	}

	if err := appendUVs(doc, prim, out, base, n); err != nil {
		return err
	}

	var indices []uint32
	if prim.Indices != nil {
		if acr, err = accessor(doc, *prim.Indices); err != nil {
			return err
		}
		if indices, err = modeler.ReadIndices(doc, acr, nil); err != nil {
			return fmt.Errorf("reading indices: %w", err)
		}
	} else {
		indices = make([]uint32, n)
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	if len(indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrNotTriangulated, len(indices))
	}
	for i := 0; i < len(indices); i += 3 {
		out.Triangles = append(out.Triangles, [3]uint32{
			indices[i] + uint32(base),
			indices[i+1] + uint32(base),
			indices[i+2] + uint32(base),
		})
	}
	return nil
}

// appendUVs reads TEXCOORD_0..2. glTF puts the UV origin at the top left;
// values are flipped to a bottom-left origin (v' = 1 - v), the orientation
// the record builder expects.
func appendUVs(doc *gltf.Document, prim *gltf.Primitive, out *rbm.Mesh, base, n int) error {
	for ch := 0; ch < rbm.MaxUVChannels; ch++ {
		idx, ok := prim.Attributes[fmt.Sprintf("TEXCOORD_%d", ch)]
		if !ok {
			continue
		}

		acr, err := accessor(doc, idx)
		if err != nil {
			return err
		}
		uvs, err := modeler.ReadTextureCoord(doc, acr, nil)
		if err != nil {
			return fmt.Errorf("reading TEXCOORD_%d: %w", ch, err)
		}
		if len(uvs) != n {
			return fmt.Errorf("%w: %d positions, %d TEXCOORD_%d", rbm.ErrShapeMismatch, n, len(uvs), ch)
		}

		for len(out.UVs) <= ch {
			out.UVs = append(out.UVs, nil)
		}
		padUVs(out, ch, base)
		for _, uv := range uvs {
			out.UVs[ch] = append(out.UVs[ch], rmath.Vec2{X: uv[0], Y: 1 - uv[1]})
		}
	}
	return nil
}

func padUVs(m *rbm.Mesh, ch, n int) {
	if missing := n - len(m.UVs[ch]); missing > 0 {
		m.UVs[ch] = append(m.UVs[ch], make([]rmath.Vec2, missing)...)
	}
}
