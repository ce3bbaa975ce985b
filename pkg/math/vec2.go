// Package math provides the small vector and matrix types used by the exporter.
package math

// Vec2 is a 2D vector, used for texture coordinates.
type Vec2 struct {
	X, Y float32
}

// FlipY returns v with the Y component negated.
func (v Vec2) FlipY() Vec2 {
	return Vec2{v.X, -v.Y}
}
