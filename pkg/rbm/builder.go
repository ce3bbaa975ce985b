package rbm

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	rmath "github.com/Faultbox/rbm-export/pkg/math"
)

// MaxUVChannels is the number of texture coordinate channels a record
// carries. Extra channels in a mesh are ignored.
const MaxUVChannels = 3

// textureExt replaces the extension of every connected image.
const textureExt = ".ddsc"

// Mesh is the triangulated geometry of one object in engine space, as
// reported by the mesh provider. All per-vertex slices share one index
// space; empty Normals, Tangents or BitangentSigns mean the attribute is
// absent. Absent signs are taken as +1.
type Mesh struct {
	Positions []rmath.Vec3
	Normals   []rmath.Vec3
	Tangents  []rmath.Vec3
	// BitangentSigns are the authoring tool's per-vertex bitangent signs.
	BitangentSigns []float32
	// UVs holds up to MaxUVChannels channels in source orientation.
	UVs       [][]rmath.Vec2
	Triangles [][3]uint32
}

// BuildOptions contains options for record building.
type BuildOptions struct {
	// NormalizeTexturePaths applies Unicode NFC to resolved texture paths.
	NormalizeTexturePaths bool
}

// BuildRecord assembles the record for one object. It returns
// ErrNoMaterial or ErrNoSupportedVariant when the object must be skipped.
func BuildRecord(name string, mesh *Mesh, mat *Material, opts BuildOptions) (*Record, error) {
	if mat == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoMaterial, name)
	}
	if _, ok := variantNames[mat.Variant]; !ok {
		return nil, fmt.Errorf("%w: %s (material %s)", ErrNoSupportedVariant, name, mat.Name)
	}
	if mesh == nil {
		mesh = &Mesh{}
	}

	n := len(mesh.Positions)
	if n > MaxVertices {
		return nil, fmt.Errorf("%w: %s has %d vertices", ErrIndexOverflow, name, n)
	}
	if err := checkMeshShape(name, mesh); err != nil {
		return nil, err
	}

	rec := &Record{
		Name:     name,
		Variant:  mat.Variant,
		Vertices: append([]rmath.Vec3(nil), mesh.Positions...),
		Normals:  make([]float32, n),
		Tangents: make([]float32, n),
		Params:   mat.Params,
		Textures: resolveTextures(mat, opts),
	}
	if mat.Variant == VariantCarPaint {
		rec.Flags = ComputeFlags(mat.Params.Bools, CarPaintFlagTable)
	}

	uvs := [MaxUVChannels][]rmath.Vec2{}
	for ch := range uvs {
		uvs[ch] = make([]rmath.Vec2, n)
		if ch < len(mesh.UVs) {
			for i, uv := range mesh.UVs[ch] {
				uvs[ch][i] = uv.FlipY()
			}
		}
	}
	rec.UV1, rec.UV2, rec.UV3 = uvs[0], uvs[1], uvs[2]

	for i := 0; i < n; i++ {
		var normal, tangent rmath.Vec3
		sign := float32(1)
		if len(mesh.Normals) > 0 {
			normal = mesh.Normals[i]
		}
		if len(mesh.Tangents) > 0 {
			tangent = mesh.Tangents[i]
		}
		if len(mesh.BitangentSigns) > 0 {
			sign = mesh.BitangentSigns[i]
		}
		rec.Normals[i] = CompressNormal(normal)
		// The packed tangent carries the authoring sign itself.
		rec.Tangents[i] = CompressTangent(tangent, -sign)
	}

	rec.Faces = make([][3]uint16, len(mesh.Triangles))
	for i, tri := range mesh.Triangles {
		for j, idx := range tri {
			if int(idx) >= n {
				return nil, fmt.Errorf("%w: %s triangle %d references vertex %d of %d", ErrIndexOverflow, name, i, idx, n)
			}
			rec.Faces[i][j] = uint16(idx)
		}
	}

	return rec, nil
}

// checkMeshShape rejects per-vertex arrays that disagree with the vertex
// count. Absent attributes are fine; they take their defaults.
func checkMeshShape(name string, mesh *Mesh) error {
	n := len(mesh.Positions)
	check := func(attr string, l int) error {
		if l != 0 && l != n {
			return fmt.Errorf("%w: %s has %d vertices but %d %s", ErrShapeMismatch, name, n, l, attr)
		}
		return nil
	}

	if err := check("normals", len(mesh.Normals)); err != nil {
		return err
	}
	if err := check("tangents", len(mesh.Tangents)); err != nil {
		return err
	}
	if err := check("bitangent signs", len(mesh.BitangentSigns)); err != nil {
		return err
	}
	for ch, uv := range mesh.UVs {
		if ch >= MaxUVChannels {
			break
		}
		if err := check(fmt.Sprintf("uv%d coordinates", ch+1), len(uv)); err != nil {
			return err
		}
	}
	return nil
}

// resolveTextures builds the texture table for the material's variant,
// one entry per fixed slot.
func resolveTextures(mat *Material, opts BuildOptions) []TexturePath {
	slots := mat.Variant.TextureSlots()
	if len(slots) == 0 {
		return nil
	}

	paths := make([]TexturePath, len(slots))
	for i, slot := range slots {
		paths[i].Slot = slot
		image := mat.Textures[slot]
		if image == "" {
			continue
		}
		path := mat.BasePath + "/" + replaceExt(image, textureExt)
		if opts.NormalizeTexturePaths {
			path = norm.NFC.String(path)
		}
		paths[i].Path = path
	}
	return paths
}

// replaceExt swaps the extension of name for ext. Leading dots of the
// base name do not start an extension, so ".env" becomes ".env.ddsc".
// Only '/' separates directories; a backslash is part of the name, as in
// POSIX file names.
func replaceExt(name, ext string) string {
	base := name
	if sep := strings.LastIndexByte(name, '/'); sep >= 0 {
		base = name[sep+1:]
	}
	dot := strings.LastIndexByte(base, '.')
	if dot <= 0 || strings.TrimLeft(base[:dot], ".") == "" {
		return name + ext
	}
	return name[:len(name)-len(base)+dot] + ext
}
