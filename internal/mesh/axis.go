package mesh

import (
	"errors"
	"fmt"
	"math"

	rmath "github.com/Faultbox/rbm-export/pkg/math"
	"github.com/Faultbox/rbm-export/pkg/rbm"
)

// Supported source up axes.
const (
	UpAxisY = "y"
	UpAxisZ = "z"
)

// ErrUnknownUpAxis is returned for an axis other than "y" or "z".
var ErrUnknownUpAxis = errors.New("unknown up axis")

// ConvertUpAxis rewrites a mesh authored with the given up axis into the
// engine's Y-up space. Z-up sources are rotated -90 degrees about X and
// their rotated normals and tangents renormalized, since the packed
// attribute encoding assumes unit vectors.
func ConvertUpAxis(m *rbm.Mesh, axis string) error {
	switch axis {
	case UpAxisY, "":
		return nil
	case UpAxisZ:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownUpAxis, axis)
	}

	rot := rmath.RotateX(-math.Pi / 2)
	for i, p := range m.Positions {
		m.Positions[i] = rot.TransformPoint(p)
	}
	for i, n := range m.Normals {
		m.Normals[i] = rot.TransformDirection(n).Normalize()
	}
	for i, t := range m.Tangents {
		m.Tangents[i] = rot.TransformDirection(t).Normalize()
	}
	return nil
}
