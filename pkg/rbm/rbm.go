// Package rbm encodes mesh and material records into RBM model files.
//
// An RBM file is a header, a global bounding box and one block per object.
// Every block uses the fixed layout of its material variant; see the
// writers in variants.go for the exact field order.
package rbm

import "errors"

// RBM export errors.
var (
	ErrNoMaterial         = errors.New("object has no material")
	ErrNoSupportedVariant = errors.New("material has no supported variant group")
	ErrEmptyBatch         = errors.New("no exportable objects")
	ErrIndexOverflow      = errors.New("mesh exceeds 16-bit index range")
	ErrShapeMismatch      = errors.New("mismatched vertex attribute lengths")
	ErrIO                 = errors.New("rbm write failed")
)

// MaxVertices is the largest vertex count addressable by 16-bit indices.
const MaxVertices = 65535
