package rbm

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// Reference byte sequences taken from a known-good file.
const (
	fileHeaderHex       = "0500000052424D444C010000001000000000000000"
	bavariumShieldHex   = "CD4CD2A501A5A4243EABAA2A3FAFAE2E3FCDCCCC3D010000002500000074657874757265732F64756D6D6965732F64756D6D795F616C7068615F6469662E64647363F0EE113D000080470000804700000000"
	waterHullHex        = "A1729CF90100000000D0EEF93D000080470000804700000000"
	carPaintPreambleHex = "D60433480E"
	windowPreambleHex   = "F603205B01"
	carLightPreambleHex = "F18B94DB01"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func TestConstants_MatchReferenceBytes(t *testing.T) {
	tests := []struct {
		name string
		got  []byte
		hex  string
	}{
		{"file header", fileHeader, fileHeaderHex},
		{"CARPAINTMM", carPaintPreamble, carPaintPreambleHex},
		{"BAVARIUMSHIELD", bavariumShieldPreamble, bavariumShieldHex},
		{"WATERHULL", waterHullPreamble, waterHullHex},
		{"WINDOW", windowPreamble, windowPreambleHex},
		{"CARLIGHT", carLightPreamble, carLightPreambleHex},
	}

	for _, tc := range tests {
		want := mustHex(t, tc.hex)
		if !bytes.Equal(tc.got, want) {
			t.Errorf("%s: got % X, want % X", tc.name, tc.got, want)
		}
	}
}

func buildTestRecord(t *testing.T, v Variant) *Record {
	t.Helper()
	rec, err := BuildRecord("obj-"+v.String(), createTestMesh(), createTestMaterial(v), BuildOptions{})
	if err != nil {
		t.Fatalf("%s: BuildRecord failed: %v", v, err)
	}
	return rec
}

func encodeBlock(t *testing.T, rec *Record) []byte {
	t.Helper()
	var buf bytes.Buffer
	e := newEncoder(&buf)
	writeBlock(e, rec)
	if e.err != nil {
		t.Fatalf("writeBlock failed: %v", e.err)
	}
	return buf.Bytes()
}

func TestWriteBlock_Lengths(t *testing.T) {
	const (
		n     = 3 // vertices
		f     = 1 // faces
		index = 4 + 6*f
		path  = len("tex/foo.ddsc")
	)

	tests := []struct {
		variant Variant
		want    int
	}{
		// fixed head, texture table, pad, positions, uv/normal stream, uv3, indices, trailer
		{VariantCarPaint, 1433 + 12*4 + path + 16 + (4 + 12*n) + (4 + 24*n) + (4 + 8*n) + index + 4},
		{VariantBavariumShield, 82 + (4 + 28*n) + index + 4},
		{VariantWaterHull, 25 + (4 + 12*n) + index + 4},
		{VariantWindow, 49 + 7*4 + path + 16 + (4 + 40*n) + index + 4},
		{VariantCarLight, 1073 + 6*4 + path + 16 + (4 + 12*n) + (4 + 24*n) + index + 4},
	}

	for _, tc := range tests {
		t.Run(tc.variant.String(), func(t *testing.T) {
			block := encodeBlock(t, buildTestRecord(t, tc.variant))
			if len(block) != tc.want {
				t.Errorf("block length = %d, want %d", len(block), tc.want)
			}
			if !bytes.HasSuffix(block, []byte{0xEF, 0xCD, 0xAB, 0x89}) {
				t.Errorf("block does not end with trailer: % X", block[len(block)-4:])
			}
		})
	}
}

func f32At(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

func TestWriteCarPaint_Fields(t *testing.T) {
	mat := createTestMaterial(VariantCarPaint)
	mat.Params.Vectors = map[string][3]float32{"SpecularGlossZones": {0.1, 0.2, 0.3}}
	mat.Params.Colors = map[string][4]float32{"DamageColor": {1, 0.5, 0.25, 1}}
	mat.Params.Bools = map[string]bool{"SUPPORT_DECALS": true, "SUPPORT_DIRT": true, "SUPPORT_SOFT_TINT": true}

	rec, err := BuildRecord("paint", createTestMesh(), mat, BuildOptions{})
	if err != nil {
		t.Fatalf("BuildRecord failed: %v", err)
	}
	block := encodeBlock(t, rec)

	if got := binary.LittleEndian.Uint32(block[5:]); got != 0x15 {
		t.Errorf("flags = %#x, want 0x15", got)
	}
	if got := f32At(block, 9); got != 1.0 {
		t.Errorf("constant = %v, want 1.0", got)
	}
	if got := f32At(block, 13); got != 0.5 {
		t.Errorf("SpecularGlossGlobal = %v, want 0.5", got)
	}
	if got := [3]float32{f32At(block, 17), f32At(block, 21), f32At(block, 25)}; got != [3]float32{0.1, 0.2, 0.3} {
		t.Errorf("SpecularGlossZones = %v", got)
	}
	// DamageColor is the last color block, right before the toggles.
	if got := [4]float32{f32At(block, 285), f32At(block, 289), f32At(block, 293), f32At(block, 297)}; got != [4]float32{1, 0.5, 0.25, 1} {
		t.Errorf("DamageColor = %v", got)
	}

	toggles := block[301:329]
	want := mustHex(t, "0000803F"+"00000000"+"00000000"+"0000000000000000"+"00008040"+"00008041")
	if !bytes.Equal(toggles, want) {
		t.Errorf("toggles = % X, want % X", toggles, want)
	}

	if !bytes.Equal(block[329:1429], make([]byte, 1100)) {
		t.Error("expected 1100 zero padding bytes after toggles")
	}
	if got := binary.LittleEndian.Uint32(block[1429:]); got != 12 {
		t.Errorf("texture count = %d, want 12", got)
	}
	if got := binary.LittleEndian.Uint32(block[1433:]); got != uint32(len("tex/foo.ddsc")) {
		t.Errorf("first texture length = %d", got)
	}
	if got := string(block[1437 : 1437+12]); got != "tex/foo.ddsc" {
		t.Errorf("first texture path = %q", got)
	}
	// Remaining 11 slots are empty: zero length, no bytes.
	if !bytes.Equal(block[1449:1449+44], make([]byte, 44)) {
		t.Error("expected 11 zero-length texture slots")
	}
}

func TestCarPaintToggleValues(t *testing.T) {
	tests := []struct {
		name   string
		toggle []byte
		want   float32
	}{
		{"decals/damage blend", toggleOne, 1.0},
		{"dirt", toggleDirt, 4.0},
		{"soft tint", toggleSoftTint, 16.0},
	}

	for _, tc := range tests {
		if got := math.Float32frombits(binary.LittleEndian.Uint32(tc.toggle)); got != tc.want {
			t.Errorf("%s toggle = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestWriteCarPaint_TogglesOff(t *testing.T) {
	mat := createTestMaterial(VariantCarPaint)
	mat.Params.Bools = nil

	rec, err := BuildRecord("paint", createTestMesh(), mat, BuildOptions{})
	if err != nil {
		t.Fatalf("BuildRecord failed: %v", err)
	}
	block := encodeBlock(t, rec)

	if !bytes.Equal(block[301:329], make([]byte, 28)) {
		t.Errorf("toggles = % X, want zeros", block[301:329])
	}
}

func TestWriteWindow_VertexStream(t *testing.T) {
	mat := createTestMaterial(VariantWindow)
	mat.Params.Scalars = map[string]float32{"SpecularGloss": 1, "UVScale": 6}

	rec, err := BuildRecord("glass", createTestMesh(), mat, BuildOptions{})
	if err != nil {
		t.Fatalf("BuildRecord failed: %v", err)
	}
	block := encodeBlock(t, rec)

	if f32At(block, 5) != 1 || f32At(block, 25) != 6 {
		t.Errorf("scalars = %v .. %v", f32At(block, 5), f32At(block, 25))
	}

	// 49 fixed bytes, 7 slots (one 12-byte path), 16 padding.
	off := 49 + 7*4 + 12 + 16
	if got := binary.LittleEndian.Uint32(block[off:]); got != 3 {
		t.Fatalf("vertex count = %d, want 3", got)
	}
	off += 4
	for i := 0; i < 3; i++ {
		vertex := block[off+i*40 : off+(i+1)*40]
		if f32At(vertex, 0) != rec.Vertices[i].X || f32At(vertex, 28) != rec.Normals[i] {
			t.Errorf("vertex %d: unexpected position/normal", i)
		}
		if !bytes.Equal(vertex[36:], []byte{0xFF, 0xFF, 0xFF, 0xFF}) {
			t.Errorf("vertex %d: missing marker, got % X", i, vertex[36:])
		}
	}
	off += 3 * 40
	if got := binary.LittleEndian.Uint32(block[off:]); got != 3 {
		t.Errorf("index count = %d, want 3", got)
	}
	if got := [3]uint16{
		binary.LittleEndian.Uint16(block[off+4:]),
		binary.LittleEndian.Uint16(block[off+6:]),
		binary.LittleEndian.Uint16(block[off+8:]),
	}; got != [3]uint16{0, 1, 2} {
		t.Errorf("indices = %v", got)
	}
}

func TestMarshal_FileLayout(t *testing.T) {
	paint := buildTestRecord(t, VariantCarPaint)
	hull := buildTestRecord(t, VariantWaterHull)

	data, err := Marshal([]*Record{paint, hull})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	if !bytes.Equal(data[:21], mustHex(t, fileHeaderHex)) {
		t.Errorf("header = % X", data[:21])
	}

	var bounds [6]float32
	if err := binary.Read(bytes.NewReader(data[21:45]), binary.LittleEndian, &bounds); err != nil {
		t.Fatalf("reading bounds: %v", err)
	}
	if bounds != [6]float32{0, 0, 0, 1, 1, 0} {
		t.Errorf("bounds = %v", bounds)
	}
	if got := binary.LittleEndian.Uint32(data[45:]); got != 2 {
		t.Errorf("object count = %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint32(data[49:]); got != 8 {
		t.Errorf("table tag = %d, want 8", got)
	}

	paintBlock := encodeBlock(t, paint)
	hullBlock := encodeBlock(t, hull)
	if !bytes.Equal(data[53:53+len(paintBlock)], paintBlock) {
		t.Error("first block is not the CARPAINTMM record")
	}
	if !bytes.Equal(data[53+len(paintBlock):], hullBlock) {
		t.Error("second block is not the WATERHULL record")
	}
}

func TestEncode_EmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, nil); !errors.Is(err, ErrEmptyBatch) {
		t.Errorf("expected ErrEmptyBatch, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected nothing written, got %d bytes", buf.Len())
	}
}

func TestEncode_InvalidRecordWritesNothing(t *testing.T) {
	good := buildTestRecord(t, VariantWaterHull)
	bad := buildTestRecord(t, VariantWaterHull)
	bad.Normals = bad.Normals[:1]

	var buf bytes.Buffer
	if err := Encode(&buf, []*Record{good, bad}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected nothing written, got %d bytes", buf.Len())
	}
}

type failingWriter struct {
	remaining int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.remaining {
		n := w.remaining
		w.remaining = 0
		return n, errors.New("disk full")
	}
	w.remaining -= len(p)
	return len(p), nil
}

func TestEncode_WriteFailure(t *testing.T) {
	err := Encode(&failingWriter{remaining: 30}, []*Record{buildTestRecord(t, VariantWaterHull)})
	if !errors.Is(err, ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.rbm")

	data, err := WriteFile(path, []*Record{buildTestRecord(t, VariantWindow)})
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !bytes.Equal(onDisk, data) {
		t.Error("file content differs from returned bytes")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the output file, found %d entries", len(entries))
	}
}

func TestWriteFile_EmptyBatchLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.rbm")

	if _, err := WriteFile(path, nil); !errors.Is(err, ErrEmptyBatch) {
		t.Errorf("expected ErrEmptyBatch, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected no output file")
	}
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "model.rbm")

	_, err := WriteFile(path, []*Record{buildTestRecord(t, VariantWaterHull)})
	if !errors.Is(err, ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
}
