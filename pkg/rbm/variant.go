package rbm

import "fmt"

// Variant identifies the material category of a record. Each variant has
// its own block layout.
type Variant uint8

// Supported variants. The zero value means no supported group matched.
const (
	VariantNone Variant = iota
	VariantCarPaint
	VariantBavariumShield
	VariantWaterHull
	VariantWindow
	VariantCarLight
)

// Variants lists the supported variants in declaration order.
var Variants = []Variant{
	VariantCarPaint,
	VariantBavariumShield,
	VariantWaterHull,
	VariantWindow,
	VariantCarLight,
}

var variantNames = map[Variant]string{
	VariantCarPaint:       "CARPAINTMM",
	VariantBavariumShield: "BAVARIUMSHIELD",
	VariantWaterHull:      "WATERHULL",
	VariantWindow:         "WINDOW",
	VariantCarLight:       "CARLIGHT",
}

// String returns the node group name of the variant.
func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	if v == VariantNone {
		return "None"
	}
	return fmt.Sprintf("Unknown(%d)", v)
}

// ParseVariant maps a material node group name to its variant.
// Names are matched exactly, as the authoring tool stores them.
func ParseVariant(name string) (Variant, bool) {
	for v, n := range variantNames {
		if n == name {
			return v, true
		}
	}
	return VariantNone, false
}

// TextureSlots returns the fixed, ordered texture slot names of the
// variant. Variants without a texture table return nil.
func (v Variant) TextureSlots() []string {
	switch v {
	case VariantCarPaint:
		return carPaintSlots
	case VariantWindow:
		return windowSlots
	case VariantCarLight:
		return carLightSlots
	default:
		return nil
	}
}

var carPaintSlots = []string{
	"DiffuseMap", "NormalMap", "PropertyMap", "TintMap", "DamageNormalMap",
	"DamageAlbedoMap", "DirtMap", "DecalAlbedoMap", "DecalNormalMap",
	"DecalPropertyMap", "LayeredAlbedoMap", "OverlayAlbedoMap",
}

var windowSlots = []string{
	"DiffuseMap", "NormalMap", "PropertyMap", "DamagePointNormal",
	"DamagePointProperty", "DamageTileNormal", "DamageTileProperty",
}

// Slot names match the node group inputs, misspellings included.
var carLightSlots = []string{
	"DiffuseMap", "NormalMap", "PropertyMap", "UNKNOWN", "NormalDetailMap",
	"EmmisiveMap",
}
