// Package export runs a batch of scene objects through the record
// builder and writes the resulting RBM file.
package export

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/zeebo/blake3"
	"go.uber.org/zap"

	"github.com/Faultbox/rbm-export/pkg/rbm"
)

// Object is one exportable scene object.
type Object interface {
	Name() string
	// Material returns nil when the object has no material.
	Material() (*rbm.Material, error)
	Mesh() (*rbm.Mesh, error)
}

// Skip records an object left out of the file and why.
type Skip struct {
	Object string
	Reason error
}

// Result describes a written file.
type Result struct {
	Path    string
	Written []string
	Skipped []Skip
	Size    int
	// Digest is the hex BLAKE3-256 of the file contents.
	Digest string
}

// Exporter builds and writes RBM files.
type Exporter struct {
	Log     *zap.Logger
	Options rbm.BuildOptions
}

// New creates an exporter. A nil logger disables logging.
func New(log *zap.Logger, opts rbm.BuildOptions) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{Log: log, Options: opts}
}

// skippable reports whether err drops a single object rather than the
// whole batch.
func skippable(err error) bool {
	return errors.Is(err, rbm.ErrNoMaterial) || errors.Is(err, rbm.ErrNoSupportedVariant)
}

// Build turns objects into records in input order.
func (e *Exporter) Build(objects []Object) ([]*rbm.Record, []Skip, error) {
	var (
		records []*rbm.Record
		skipped []Skip
	)

	for _, obj := range objects {
		name := obj.Name()
		log := e.Log.With(zap.String("object", name))

		rec, err := e.buildOne(obj)
		if err != nil {
			if skippable(err) {
				log.Warn("Skipping object", zap.Error(err))
				skipped = append(skipped, Skip{Object: name, Reason: err})
				continue
			}
			return nil, nil, fmt.Errorf("object %q: %w", name, err)
		}

		log.Info("Processed object",
			zap.Stringer("variant", rec.Variant),
			zap.Int("vertices", len(rec.Vertices)),
			zap.Int("triangles", len(rec.Faces)))
		if rec.Variant == rbm.VariantCarPaint {
			log.Debug("Render flags", zap.String("flags", fmt.Sprintf("0x%08x", rec.Flags)))
		}
		for _, tex := range rec.Textures {
			log.Debug("Texture", zap.String("slot", tex.Slot), zap.String("path", tex.Path))
		}

		records = append(records, rec)
	}
	return records, skipped, nil
}

func (e *Exporter) buildOne(obj Object) (*rbm.Record, error) {
	mat, err := obj.Material()
	if err != nil {
		return nil, err
	}
	// Material checks come first so unsupported objects skip without
	// loading their mesh.
	if mat == nil {
		return nil, rbm.ErrNoMaterial
	}
	if mat.Variant == rbm.VariantNone {
		return nil, fmt.Errorf("material %q: %w", mat.Name, rbm.ErrNoSupportedVariant)
	}

	mesh, err := obj.Mesh()
	if err != nil {
		return nil, err
	}
	return rbm.BuildRecord(obj.Name(), mesh, mat, e.Options)
}

// Export builds every object and writes one file to path. Nothing is
// written when no object is exportable.
func (e *Exporter) Export(objects []Object, path string) (*Result, error) {
	records, skipped, err := e.Build(objects)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, rbm.ErrEmptyBatch
	}

	data, err := rbm.WriteFile(path, records)
	if err != nil {
		return nil, err
	}

	sum := blake3.Sum256(data)
	res := &Result{
		Path:    path,
		Skipped: skipped,
		Size:    len(data),
		Digest:  hex.EncodeToString(sum[:]),
	}
	for _, rec := range records {
		res.Written = append(res.Written, rec.Name)
	}

	e.Log.Info("Wrote RBM file",
		zap.String("path", path),
		zap.Int("objects", len(records)),
		zap.Int("skipped", len(skipped)),
		zap.Int("bytes", res.Size),
		zap.String("blake3", res.Digest))
	return res, nil
}
