package rbm

// Params holds the named inputs of a material node group. Lookups of
// missing names return zero values.
type Params struct {
	Scalars map[string]float32
	Vectors map[string][3]float32
	Colors  map[string][4]float32
	Bools   map[string]bool
}

// Scalar returns the named scalar input, or 0.
func (p Params) Scalar(name string) float32 { return p.Scalars[name] }

// Vector returns the named vector input, or (0,0,0).
func (p Params) Vector(name string) [3]float32 { return p.Vectors[name] }

// Color returns the named RGBA input, or (0,0,0,0).
func (p Params) Color(name string) [4]float32 { return p.Colors[name] }

// Bool returns the named boolean input, or false.
func (p Params) Bool(name string) bool { return p.Bools[name] }

// Material is what the material provider reports for one object.
type Material struct {
	Name string
	// Variant is the first supported node group found on the material,
	// VariantNone if there was none.
	Variant  Variant
	BasePath string
	Params   Params
	// Textures maps a texture slot name to the connected image name.
	Textures map[string]string
}

// Zone is a global value with its three per-zone values.
type Zone struct {
	Global float32
	Zones  [3]float32
}

func zoneParam(p Params, name string) Zone {
	return Zone{
		Global: p.Scalar(name + "Global"),
		Zones:  p.Vector(name + "Zones"),
	}
}

// CarPaintParams are the CARPAINTMM inputs in block order.
type CarPaintParams struct {
	SpecularGloss Zone
	Metallic      Zone
	ClearCoat     Zone
	Emissive      Zone
	DiffuseWrap   Zone
	DirtParams    Zone
	DirtBlend     Zone
	DirtColor     [4]float32
	DecalCount    Zone
	DecalWidth    Zone
	DecalBlend    Zone
	DecalColors   [4][4]float32
	Damage        Zone
	DamageBlend   Zone
	DamageColor   [4]float32

	SupportDecals      bool
	SupportDamageBlend bool
	SupportDirt        bool
	SupportSoftTint    bool
}

func carPaintParams(p Params) CarPaintParams {
	return CarPaintParams{
		SpecularGloss: zoneParam(p, "SpecularGloss"),
		Metallic:      zoneParam(p, "Metallic"),
		ClearCoat:     zoneParam(p, "ClearCoat"),
		Emissive:      zoneParam(p, "Emissive"),
		DiffuseWrap:   zoneParam(p, "DiffuseWrap"),
		DirtParams:    zoneParam(p, "DirtParams"),
		DirtBlend:     zoneParam(p, "DirtBlend"),
		DirtColor:     p.Color("DirtColor"),
		DecalCount:    zoneParam(p, "DecalCount"),
		DecalWidth:    zoneParam(p, "DecalWidth"),
		DecalBlend:    zoneParam(p, "DecalBlend"),
		DecalColors: [4][4]float32{
			p.Color("Decal1Color"),
			p.Color("Decal2Color"),
			p.Color("Decal3Color"),
			p.Color("Decal4Color"),
		},
		Damage:      zoneParam(p, "Damage"),
		DamageBlend: zoneParam(p, "DamageBlend"),
		DamageColor: p.Color("DamageColor"),

		SupportDecals:      p.Bool("SUPPORT_DECALS"),
		SupportDamageBlend: p.Bool("SUPPORT_DAMAGE_BLEND"),
		SupportDirt:        p.Bool("SUPPORT_DIRT"),
		SupportSoftTint:    p.Bool("SUPPORT_SOFT_TINT"),
	}
}

// WindowParams are the WINDOW inputs in block order.
type WindowParams struct {
	SpecularGloss    float32
	SpecularFresnel  float32
	DiffuseRoughness float32
	TintPower        float32
	MinAlpha         float32
	UVScale          float32
}

func windowParams(p Params) WindowParams {
	return WindowParams{
		SpecularGloss:    p.Scalar("SpecularGloss"),
		SpecularFresnel:  p.Scalar("SpecularFresnel"),
		DiffuseRoughness: p.Scalar("DiffuseRoughness"),
		TintPower:        p.Scalar("TintPower"),
		MinAlpha:         p.Scalar("MinAlpha"),
		UVScale:          p.Scalar("UVScale"),
	}
}

// CarLightParams are the CARLIGHT inputs in block order.
type CarLightParams struct {
	SpecularGloss    float32
	Reflectivity     float32
	SpecularFresnel  float32
	DiffuseModulator [4]float32
	TilingX          float32
	TilingY          float32
}

func carLightParams(p Params) CarLightParams {
	return CarLightParams{
		SpecularGloss:    p.Scalar("SpecularGloss"),
		Reflectivity:     p.Scalar("Reflectivity"),
		SpecularFresnel:  p.Scalar("SpecularFresnel"),
		DiffuseModulator: p.Color("DiffuseModulator"),
		TilingX:          p.Scalar("TilingX"),
		TilingY:          p.Scalar("TilingY"),
	}
}
