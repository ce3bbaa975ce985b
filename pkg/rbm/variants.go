package rbm

// Block preambles. Each starts with the variant's type hash (u32) and a
// version byte; BAVARIUMSHIELD and WATERHULL carry fixed material data.
var (
	carPaintPreamble = []byte{0xD6, 0x04, 0x33, 0x48, 0x0E}

	bavariumShieldPreamble = concat(
		[]byte{0xCD, 0x4C, 0xD2, 0xA5, 0x01},
		[]byte{
			0xA5, 0xA4, 0x24, 0x3E,
			0xAB, 0xAA, 0x2A, 0x3F,
			0xAF, 0xAE, 0x2E, 0x3F,
			0xCD, 0xCC, 0xCC, 0x3D,
		},
		// One texture: the dummy alpha diffuse map.
		[]byte{0x01, 0x00, 0x00, 0x00, 0x25, 0x00, 0x00, 0x00},
		[]byte("textures/dummies/dummy_alpha_dif.ddsc"),
		[]byte{
			0xF0, 0xEE, 0x11, 0x3D,
			0x00, 0x00, 0x80, 0x47,
			0x00, 0x00, 0x80, 0x47,
			0x00, 0x00, 0x00, 0x00,
		},
	)

	waterHullPreamble = []byte{
		0xA1, 0x72, 0x9C, 0xF9, 0x01,
		0x00, 0x00, 0x00, 0x00,
		0xD0, 0xEE, 0xF9, 0x3D,
		0x00, 0x00, 0x80, 0x47,
		0x00, 0x00, 0x80, 0x47,
		0x00, 0x00, 0x00, 0x00,
	}

	windowPreamble   = []byte{0xF6, 0x03, 0x20, 0x5B, 0x01}
	carLightPreamble = []byte{0xF1, 0x8B, 0x94, 0xDB, 0x01}
)

// CARPAINTMM toggle values, stored as raw float bits: 1.0 for decals and
// damage blend, 4.0 for dirt, 16.0 for soft tint.
var (
	toggleOne = []byte{0x00, 0x00, 0x80, 0x3F}
	// 00 00 80 40 is 4.0, not 2.0; these are the bytes reference files
	// carry and the engine reads.
	toggleDirt     = []byte{0x00, 0x00, 0x80, 0x40}
	toggleSoftTint = []byte{0x00, 0x00, 0x80, 0x41}
)

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// writeBlock dispatches rec to the writer of its variant.
func writeBlock(e *encoder, rec *Record) {
	switch rec.Variant {
	case VariantCarPaint:
		writeCarPaint(e, rec)
	case VariantBavariumShield:
		writeBavariumShield(e, rec)
	case VariantWaterHull:
		writeWaterHull(e, rec)
	case VariantWindow:
		writeWindow(e, rec)
	case VariantCarLight:
		writeCarLight(e, rec)
	}
}

func writeCarPaint(e *encoder, rec *Record) {
	p := carPaintParams(rec.Params)

	e.bytes(carPaintPreamble)
	e.u32(rec.Flags)
	e.f32(1.0)

	e.zone(p.SpecularGloss)
	e.zone(p.Metallic)
	e.zone(p.ClearCoat)
	e.zone(p.Emissive)
	e.zone(p.DiffuseWrap)
	e.zone(p.DirtParams)
	e.zone(p.DirtBlend)
	e.color(p.DirtColor)
	e.zone(p.DecalCount)
	e.zone(p.DecalWidth)
	e.zone(p.DecalBlend)
	for _, c := range p.DecalColors {
		e.color(c)
	}
	e.zone(p.Damage)
	e.zone(p.DamageBlend)
	e.color(p.DamageColor)

	e.toggle(p.SupportDecals, toggleOne)
	e.toggle(p.SupportDamageBlend, toggleOne)
	e.zeros(4) // layered
	e.zeros(8) // overlay, rotation
	e.toggle(p.SupportDirt, toggleDirt)
	e.toggle(p.SupportSoftTint, toggleSoftTint)
	e.zeros(76)
	e.zeros(1024)

	e.textures(rec.Textures)
	e.zeros(16)

	e.positions(rec.Vertices)
	e.count(len(rec.Vertices))
	for i := range rec.Vertices {
		e.vec2(rec.UV1[i])
		e.vec2(rec.UV2[i])
		e.f32(rec.Normals[i])
		e.f32(rec.Tangents[i])
	}
	e.count(len(rec.Vertices))
	for _, uv := range rec.UV3 {
		e.vec2(uv)
	}

	e.indices(rec)
	e.trailer()
}

func writeBavariumShield(e *encoder, rec *Record) {
	e.bytes(bavariumShieldPreamble)

	e.count(len(rec.Vertices))
	for i, v := range rec.Vertices {
		e.vec3(v)
		e.vec2(rec.UV1[i])
		e.f32(rec.Normals[i])
		e.f32(rec.Tangents[i])
	}

	e.indices(rec)
	e.trailer()
}

func writeWaterHull(e *encoder, rec *Record) {
	e.bytes(waterHullPreamble)
	e.positions(rec.Vertices)
	e.indices(rec)
	e.trailer()
}

// windowVertexMarker ends every WINDOW vertex.
const windowVertexMarker = 0xFFFFFFFF

func writeWindow(e *encoder, rec *Record) {
	p := windowParams(rec.Params)

	e.bytes(windowPreamble)
	e.f32s(
		p.SpecularGloss,
		p.SpecularFresnel,
		p.DiffuseRoughness,
		p.TintPower,
		p.MinAlpha,
		p.UVScale,
	)
	e.zeros(16)

	e.textures(rec.Textures)
	e.zeros(16)

	e.count(len(rec.Vertices))
	for i, v := range rec.Vertices {
		e.vec3(v)
		e.vec2(rec.UV1[i])
		e.vec2(rec.UV2[i])
		e.f32(rec.Normals[i])
		e.f32(rec.Tangents[i])
		e.u32(windowVertexMarker)
	}

	e.indices(rec)
	e.trailer()
}

func writeCarLight(e *encoder, rec *Record) {
	p := carLightParams(rec.Params)

	e.bytes(carLightPreamble)
	e.f32s(p.SpecularGloss, p.Reflectivity, p.SpecularFresnel)
	e.color(p.DiffuseModulator)
	e.f32s(p.TilingX, p.TilingY)
	e.zeros(1028)

	e.textures(rec.Textures)
	e.zeros(16)

	e.positions(rec.Vertices)
	e.count(len(rec.Vertices))
	for i := range rec.Vertices {
		e.vec2(rec.UV1[i])
		e.vec2(rec.UV2[i])
		e.f32(rec.Normals[i])
		e.f32(rec.Tangents[i])
	}

	e.indices(rec)
	e.trailer()
}
