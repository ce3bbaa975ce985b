package rbm

import (
	"encoding/binary"
	"io"
	"math"

	rmath "github.com/Faultbox/rbm-export/pkg/math"
)

// blockTrailer terminates every object block.
var blockTrailer = []byte{0xEF, 0xCD, 0xAB, 0x89}

// encoder writes little-endian fields to w. The first write error sticks
// and turns every later call into a no-op.
type encoder struct {
	w   io.Writer
	n   int64
	err error
	buf [8]byte
}

func newEncoder(w io.Writer) *encoder {
	return &encoder{w: w}
}

func (e *encoder) bytes(p []byte) {
	if e.err != nil || len(p) == 0 {
		return
	}
	n, err := e.w.Write(p)
	e.n += int64(n)
	e.err = err
}

var zeroRun [1024]byte

func (e *encoder) zeros(n int) {
	for n > 0 && e.err == nil {
		chunk := min(n, len(zeroRun))
		e.bytes(zeroRun[:chunk])
		n -= chunk
	}
}

func (e *encoder) u32(v uint32) {
	binary.LittleEndian.PutUint32(e.buf[:4], v)
	e.bytes(e.buf[:4])
}

func (e *encoder) u16(v uint16) {
	binary.LittleEndian.PutUint16(e.buf[:2], v)
	e.bytes(e.buf[:2])
}

func (e *encoder) f32(v float32) {
	e.u32(math.Float32bits(v))
}

func (e *encoder) f32s(vs ...float32) {
	for _, v := range vs {
		e.f32(v)
	}
}

func (e *encoder) count(n int) {
	e.u32(uint32(n))
}

func (e *encoder) vec2(v rmath.Vec2) {
	e.f32(v.X)
	e.f32(v.Y)
}

func (e *encoder) vec3(v rmath.Vec3) {
	e.f32(v.X)
	e.f32(v.Y)
	e.f32(v.Z)
}

func (e *encoder) zone(z Zone) {
	e.f32(z.Global)
	e.f32s(z.Zones[:]...)
}

func (e *encoder) color(c [4]float32) {
	e.f32s(c[:]...)
}

// toggle writes on when set, four zero bytes otherwise.
func (e *encoder) toggle(set bool, on []byte) {
	if set {
		e.bytes(on)
		return
	}
	e.zeros(4)
}

// textures writes the slot count followed by each length-prefixed path.
func (e *encoder) textures(paths []TexturePath) {
	e.count(len(paths))
	for _, t := range paths {
		e.count(t.Len())
		e.bytes([]byte(t.Path))
	}
}

// positions writes the vertex count followed by every position.
func (e *encoder) positions(vertices []rmath.Vec3) {
	e.count(len(vertices))
	for _, v := range vertices {
		e.vec3(v)
	}
}

// indices writes the index count followed by every triangle.
func (e *encoder) indices(rec *Record) {
	e.count(rec.IndexCount())
	for _, f := range rec.Faces {
		e.u16(f[0])
		e.u16(f[1])
		e.u16(f[2])
	}
}

func (e *encoder) trailer() {
	e.bytes(blockTrailer)
}
