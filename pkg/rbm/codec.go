package rbm

import (
	"math"

	rmath "github.com/Faultbox/rbm-export/pkg/math"
)

// CompressNormal packs a unit vector into one float. Each component is
// quantized to 0..254 and placed in its own magnitude band: x in the
// fraction (/256), y in the units, z in the high part (*256). The engine
// decodes by inverse scaling, so the arithmetic must not change.
func CompressNormal(v rmath.Vec3) float32 {
	x := math.Floor((float64(v.X)+1.0)*127.0) / 256.0
	y := math.Floor((float64(v.Y) + 1.0) * 127.0)
	z := math.Floor((float64(v.Z)+1.0)*127.0) * 256.0
	return float32(x + y + z)
}

// CompressTangent packs a tangent like CompressNormal and stores the
// handedness in the sign: the result has the sign of -bitangentSign.
func CompressTangent(t rmath.Vec3, bitangentSign float32) float32 {
	return float32(math.Copysign(float64(CompressNormal(t)), -float64(bitangentSign)))
}

// FlagBit maps a boolean material input to its bit in the flags field.
type FlagBit struct {
	Name  string
	Value uint32
}

// CarPaintFlagTable lists the CARPAINTMM boolean inputs that contribute to
// the flags field.
var CarPaintFlagTable = []FlagBit{
	{"SUPPORT_DECALS", 0x1},
	{"SUPPORT_DAMAGE_BLEND", 0x2},
	{"SUPPORT_DIRT", 0x4},
	{"SUPPORT_SOFT_TINT", 0x10},
	{"SUPPORT_LAYERED", 0x20},
	{"SUPPORT_OVERLAY", 0x40},
	{"DISABLE_BACKFACE_CULLING", 0x80},
	{"TRANSPARENCY_ALPHABLENDING", 0x100},
	{"TRANSPARENCY_ALPHATESTING", 0x200},
	{"IS_DEFORM", 0x1000},
	{"IS_SKINNED", 0x2000},
}

// ComputeFlags sums the table value of every boolean that is set.
// Booleans absent from the table are ignored.
func ComputeFlags(bools map[string]bool, table []FlagBit) uint32 {
	var flags uint32
	for _, bit := range table {
		if bools[bit.Name] {
			flags += bit.Value
		}
	}
	return flags
}
