package mesh

import (
	rmath "github.com/Faultbox/rbm-export/pkg/math"
	"github.com/Faultbox/rbm-export/pkg/rbm"
)

// Inline is a mesh written directly in a scene manifest. UVs use a
// bottom-left origin. Tangents carry the bitangent sign in w; a
// zero w is read as +1.
type Inline struct {
	Positions [][3]float32   `yaml:"positions"`
	Normals   [][3]float32   `yaml:"normals,omitempty"`
	Tangents  [][4]float32   `yaml:"tangents,omitempty"`
	UVs       [][][2]float32 `yaml:"uvs,omitempty"`
	Triangles [][3]uint32    `yaml:"triangles"`
}

// Mesh converts the inline data into builder input.
func (in *Inline) Mesh() *rbm.Mesh {
	m := &rbm.Mesh{
		Positions: make([]rmath.Vec3, len(in.Positions)),
		Triangles: append([][3]uint32(nil), in.Triangles...),
	}
	for i, p := range in.Positions {
		m.Positions[i] = rmath.V3(p)
	}

	if len(in.Normals) > 0 {
		m.Normals = make([]rmath.Vec3, len(in.Normals))
		for i, n := range in.Normals {
			m.Normals[i] = rmath.V3(n)
		}
	}

	if len(in.Tangents) > 0 {
		m.Tangents = make([]rmath.Vec3, len(in.Tangents))
		m.BitangentSigns = make([]float32, len(in.Tangents))
		for i, t := range in.Tangents {
			m.Tangents[i] = rmath.Vec3{X: t[0], Y: t[1], Z: t[2]}
			m.BitangentSigns[i] = 1
			if t[3] < 0 {
				m.BitangentSigns[i] = -1
			}
		}
	}

	for _, channel := range in.UVs {
		uvs := make([]rmath.Vec2, len(channel))
		for i, uv := range channel {
			uvs[i] = rmath.Vec2{X: uv[0], Y: uv[1]}
		}
		m.UVs = append(m.UVs, uvs)
	}
	return m
}
