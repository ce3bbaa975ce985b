package rbm

import rmath "github.com/Faultbox/rbm-export/pkg/math"

// Bounds is the axis-aligned bounding box of every vertex in a batch.
type Bounds struct {
	Min rmath.Vec3
	Max rmath.Vec3
}

// Array returns the box as [minX, minY, minZ, maxX, maxY, maxZ], the order
// it is written in.
func (b Bounds) Array() [6]float32 {
	return [6]float32{b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z}
}

// ComputeBounds returns the componentwise min/max over all vertices of all
// records. It fails with ErrEmptyBatch when there is nothing to bound.
func ComputeBounds(records []*Record) (Bounds, error) {
	var b Bounds
	seen := false
	for _, rec := range records {
		for _, v := range rec.Vertices {
			if !seen {
				b = Bounds{Min: v, Max: v}
				seen = true
				continue
			}
			b.Min = b.Min.Min(v)
			b.Max = b.Max.Max(v)
		}
	}
	if !seen {
		return Bounds{}, ErrEmptyBatch
	}
	return b, nil
}
