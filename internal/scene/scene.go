// Package scene reads a YAML scene manifest describing the objects to
// export, their materials and where their meshes come from.
package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/rbm-export/internal/export"
	"github.com/Faultbox/rbm-export/internal/mesh"
	"github.com/Faultbox/rbm-export/pkg/rbm"
)

// Manifest errors.
var (
	ErrUnknownMaterial = errors.New("unknown material")
	ErrNoMeshSource    = errors.New("object has no mesh source")
	ErrDuplicateObject = errors.New("duplicate object name")
)

// Manifest is the on-disk scene description.
type Manifest struct {
	Materials map[string]MaterialDef `yaml:"materials"`
	Objects   []ObjectDef            `yaml:"objects"`
}

// MaterialDef lists the node groups of one material in authoring order.
type MaterialDef struct {
	NodeGroups []NodeGroupDef `yaml:"node_groups"`
}

// NodeGroupDef holds the inputs of one material node group.
type NodeGroupDef struct {
	Name     string                `yaml:"name"`
	BasePath string                `yaml:"base_path"`
	Values   map[string]float32    `yaml:"values,omitempty"`
	Vectors  map[string][3]float32 `yaml:"vectors,omitempty"`
	Colors   map[string][4]float32 `yaml:"colors,omitempty"`
	Booleans map[string]bool       `yaml:"booleans,omitempty"`
	// Textures maps slot names to image file names.
	Textures map[string]string `yaml:"textures,omitempty"`
}

// ObjectDef is one exportable object.
type ObjectDef struct {
	Name     string  `yaml:"name"`
	Material string  `yaml:"material,omitempty"`
	Mesh     MeshRef `yaml:"mesh"`
}

// MeshRef points at a mesh in a glTF file or carries it inline.
type MeshRef struct {
	File   string       `yaml:"file,omitempty"`
	Name   string       `yaml:"name,omitempty"`
	Inline *mesh.Inline `yaml:"inline,omitempty"`
}

// Options control how meshes are read.
type Options struct {
	// UpAxis is the up axis the meshes were authored with.
	UpAxis string
}

// Scene is a loaded and validated manifest.
type Scene struct {
	Manifest Manifest
	// Dir is the directory mesh file paths are relative to.
	Dir  string
	opts Options

	cache *mesh.Cache
}

// Load reads and validates the manifest at path.
func Load(path string, opts Options) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	s, err := Parse(data, filepath.Dir(path), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a manifest whose mesh paths are relative to dir.
func Parse(data []byte, dir string, opts Options) (*Scene, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &Scene{Manifest: m, Dir: dir, opts: opts, cache: mesh.NewCache()}, nil
}

// Validate checks object references. Node group names are not checked;
// unsupported groups only cause the object to be skipped on export.
func (m *Manifest) Validate() error {
	seen := make(map[string]bool, len(m.Objects))
	for i, obj := range m.Objects {
		if obj.Name == "" {
			return fmt.Errorf("object %d: empty name", i)
		}
		if seen[obj.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateObject, obj.Name)
		}
		seen[obj.Name] = true

		if obj.Material != "" {
			if _, ok := m.Materials[obj.Material]; !ok {
				return fmt.Errorf("object %q: %w: %q", obj.Name, ErrUnknownMaterial, obj.Material)
			}
		}
		if obj.Mesh.File == "" && obj.Mesh.Inline == nil {
			return fmt.Errorf("object %q: %w", obj.Name, ErrNoMeshSource)
		}
	}
	return nil
}

// Objects returns the scene objects in manifest order.
func (s *Scene) Objects() []export.Object {
	objects := make([]export.Object, len(s.Manifest.Objects))
	for i := range s.Manifest.Objects {
		objects[i] = &Object{scene: s, def: &s.Manifest.Objects[i]}
	}
	return objects
}

// Object is a manifest object bound to its scene.
type Object struct {
	scene *Scene
	def   *ObjectDef
}

// Name returns the object name.
func (o *Object) Name() string { return o.def.Name }

// Material resolves the object's material. The first node group naming a
// supported variant provides the inputs; with none the material is
// reported with VariantNone. Objects without a material return nil.
func (o *Object) Material() (*rbm.Material, error) {
	if o.def.Material == "" {
		return nil, nil
	}
	def, ok := o.scene.Manifest.Materials[o.def.Material]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, o.def.Material)
	}

	mat := &rbm.Material{Name: o.def.Material}
	for _, group := range def.NodeGroups {
		v, ok := rbm.ParseVariant(group.Name)
		if !ok {
			continue
		}
		mat.Variant = v
		mat.BasePath = group.BasePath
		mat.Params = rbm.Params{
			Scalars: group.Values,
			Vectors: group.Vectors,
			Colors:  group.Colors,
			Bools:   group.Booleans,
		}
		mat.Textures = group.Textures
		break
	}
	return mat, nil
}

// Mesh loads the object's mesh and converts it to the engine's up axis.
func (o *Object) Mesh() (*rbm.Mesh, error) {
	var (
		m   *rbm.Mesh
		err error
	)
	if o.def.Mesh.Inline != nil {
		m = o.def.Mesh.Inline.Mesh()
	} else {
		path := o.def.Mesh.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(o.scene.Dir, path)
		}
		if m, err = o.scene.cache.Load(path, o.def.Mesh.Name); err != nil {
			return nil, err
		}
	}

	if err := mesh.ConvertUpAxis(m, o.scene.opts.UpAxis); err != nil {
		return nil, err
	}
	return m, nil
}
