package revolve

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/lathe/pkg/mesh"
)

const tolerance = 1e-5

// bottle is the reference water bottle from the room scene.
var bottle = ProfileSpec{
	TotalHeight:   18,
	BaseRadius:    3,
	NeckRadius:    2.6,
	ShoulderStart: 15,
	ShoulderEnd:   16,
}

func near(a, b float32) bool {
	return math32.Abs(a-b) <= tolerance
}

func TestRadiusAtRegions(t *testing.T) {
	tests := []struct {
		z    float32
		want float32
	}{
		{0, 3},
		{10, 3},
		{15, 3},
		{15.5, 2.8},
		{16, 2.6},
		{17, 2.6},
		{18, 2.6},
	}
	for _, tt := range tests {
		if got := RadiusAt(tt.z, bottle); !near(got, tt.want) {
			t.Errorf("RadiusAt(%v) = %v, want %v", tt.z, got, tt.want)
		}
	}
}

func TestRadiusContinuity(t *testing.T) {
	specs := []ProfileSpec{
		bottle,
		{TotalHeight: 23, BaseRadius: 4, NeckRadius: 3.5, ShoulderStart: 18, ShoulderEnd: 20},
		{TotalHeight: 1, BaseRadius: 0.2, NeckRadius: 0.9, ShoulderStart: 0, ShoulderEnd: 1},
	}
	for _, s := range specs {
		if got := RadiusAt(s.ShoulderStart, s); !near(got, s.BaseRadius) {
			t.Errorf("%+v: RadiusAt(start) = %v, want %v", s, got, s.BaseRadius)
		}
		if got := RadiusAt(s.ShoulderEnd, s); !near(got, s.NeckRadius) {
			t.Errorf("%+v: RadiusAt(end) = %v, want %v", s, got, s.NeckRadius)
		}
	}
}

func TestRadiusMonotonicBlend(t *testing.T) {
	const steps = 200
	prev := RadiusAt(bottle.ShoulderStart, bottle)
	for k := 1; k <= steps; k++ {
		z := bottle.ShoulderStart + (bottle.ShoulderEnd-bottle.ShoulderStart)*float32(k)/steps
		r := RadiusAt(z, bottle)
		if r > prev+1e-6 {
			t.Fatalf("radius increased at z=%v: %v > %v", z, r, prev)
		}
		prev = r
	}
}

func TestRadiusZeroLengthShoulder(t *testing.T) {
	s := ProfileSpec{TotalHeight: 10, BaseRadius: 2, NeckRadius: 1, ShoulderStart: 5, ShoulderEnd: 5}
	if got := RadiusAt(4.999, s); got != 2 {
		t.Errorf("below step: got %v, want 2", got)
	}
	if got := RadiusAt(5, s); got != 1 {
		t.Errorf("at step: got %v, want 1", got)
	}
	if math32.IsNaN(RadiusAt(5, s)) {
		t.Error("step produced NaN")
	}

	m, err := Generate(s, 6, 10)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i := 0; i < m.Rings; i++ {
		if r := m.Ring(i).Radius; math32.IsNaN(r) {
			t.Fatalf("ring %d radius is NaN", i)
		}
	}
}

func TestColorAt(t *testing.T) {
	b := DefaultBanding()
	tests := []struct {
		z    float32
		want mesh.RGB
	}{
		{0, b.Body},
		{14.99, b.Body},
		{15, b.Band},
		{16, b.Band},
		{16.04, b.Band},
		{16.06, b.Cap},
		{18, b.Cap},
	}
	for _, tt := range tests {
		if got := ColorAt(tt.z, bottle); got != tt.want {
			t.Errorf("ColorAt(%v) = %v, want %v", tt.z, got, tt.want)
		}
	}
}

func TestCustomBanding(t *testing.T) {
	b := Banding{
		Body: mesh.RGB{1, 0, 0},
		Band: mesh.RGB{0, 1, 0},
		Cap:  mesh.RGB{0, 0, 1},
	}
	// zero epsilon: band ends exactly at the shoulder end
	if got := b.ColorAt(16, bottle); got != b.Cap {
		t.Errorf("ColorAt(16) = %v, want cap", got)
	}

	m, err := GenerateBanded(bottle, 4, 18, b)
	if err != nil {
		t.Fatalf("GenerateBanded: %v", err)
	}
	if got := m.Ring(0).Color; got != b.Body {
		t.Errorf("ring 0 color = %v, want body", got)
	}
	if got := m.Ring(m.Rings - 1).Color; got != b.Cap {
		t.Errorf("top ring color = %v, want cap", got)
	}
}

func TestGenerateScenario(t *testing.T) {
	m, err := Generate(bottle, 8, 4)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if got := m.VertexCount(); got != 45 {
		t.Errorf("vertex count = %d, want 45", got)
	}
	if len(m.Vertices) != 45*mesh.VertexStride {
		t.Errorf("vertex floats = %d, want %d", len(m.Vertices), 45*mesh.VertexStride)
	}
	if m.Rings != 5 || m.Columns != 9 {
		t.Errorf("grid = %dx%d, want 5x9", m.Rings, m.Columns)
	}
	if m.Topology != mesh.TriangleStrip {
		t.Errorf("topology = %v, want triangle-strip", m.Topology)
	}

	wantHeights := []float32{0, 4.5, 9, 13.5, 18}
	for i, h := range wantHeights {
		if got := m.Ring(i).Height; got != h {
			t.Errorf("ring %d height = %v, want %v", i, got, h)
		}
	}
	if got := m.Ring(0).Radius; !near(got, 3) {
		t.Errorf("ring 0 radius = %v, want 3", got)
	}
	if got := m.Ring(4).Radius; !near(got, 2.6) {
		t.Errorf("top ring radius = %v, want 2.6", got)
	}
}

func TestGenerateCounts(t *testing.T) {
	tests := []struct {
		a, v int
	}{
		{3, 1},
		{8, 4},
		{120, 200},
		{17, 3},
	}
	for _, tt := range tests {
		m, err := Generate(bottle, tt.a, tt.v)
		if err != nil {
			t.Fatalf("Generate(%d, %d): %v", tt.a, tt.v, err)
		}
		if got, want := m.VertexCount(), (tt.v+1)*(tt.a+1); got != want {
			t.Errorf("A=%d V=%d: vertices = %d, want %d", tt.a, tt.v, got, want)
		}
		wantIdx := tt.v*2*(tt.a+1) + 2*(tt.v-1)
		if got := len(m.Indices); got != wantIdx {
			t.Errorf("A=%d V=%d: indices = %d, want %d", tt.a, tt.v, got, wantIdx)
		}
		if m.TriangleStripLength != wantIdx {
			t.Errorf("A=%d V=%d: strip length = %d, want %d", tt.a, tt.v, m.TriangleStripLength, wantIdx)
		}
		if IndexCount(tt.a, tt.v) != wantIdx || VertexCount(tt.a, tt.v) != m.VertexCount() {
			t.Errorf("A=%d V=%d: count helpers disagree with mesh", tt.a, tt.v)
		}
		for _, idx := range m.Indices {
			if int(idx) >= m.VertexCount() {
				t.Fatalf("A=%d V=%d: index %d out of range", tt.a, tt.v, idx)
			}
		}
	}
}

func TestStripLayout(t *testing.T) {
	m, err := Generate(bottle, 3, 2)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// columns C=4: pair (0,1), join (7,4), pair (1,2)
	want := []uint32{
		0, 4, 1, 5, 2, 6, 3, 7,
		7, 4,
		4, 8, 5, 9, 6, 10, 7, 11,
	}
	if len(m.Indices) != len(want) {
		t.Fatalf("indices = %v, want %v", m.Indices, want)
	}
	for i := range want {
		if m.Indices[i] != want[i] {
			t.Fatalf("indices = %v, want %v", m.Indices, want)
		}
	}
}

func TestSeamClosure(t *testing.T) {
	const a = 12
	m, err := Generate(bottle, a, 9)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i := 0; i < m.Rings; i++ {
		first := m.Position(i * m.Columns)
		last := m.Position(i*m.Columns + a)
		if first != last {
			t.Errorf("ring %d seam open: %v vs %v", i, first, last)
		}
	}
}

func TestRingsShareHeightRadiusColor(t *testing.T) {
	m, err := Generate(bottle, 16, 36)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i := 0; i < m.Rings; i++ {
		ring := m.Ring(i)
		for j := 0; j < m.Columns; j++ {
			v := i*m.Columns + j
			p := m.Position(v)
			if p.Y != ring.Height {
				t.Fatalf("ring %d col %d height %v != %v", i, j, p.Y, ring.Height)
			}
			if r := math32.Sqrt(p.X*p.X + p.Z*p.Z); !near(r, ring.Radius) {
				t.Fatalf("ring %d col %d radius %v != %v", i, j, r, ring.Radius)
			}
			if m.Color(v) != ring.Color {
				t.Fatalf("ring %d col %d color differs", i, j)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(bottle, 64, 90)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(bottle, 64, 90)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !bytes.Equal(encode(t, a), encode(t, b)) {
		t.Error("identical inputs produced different buffers")
	}
}

func encode(t *testing.T, m *Mesh) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, m.Vertices); err != nil {
		t.Fatal(err)
	}
	if err := binary.Write(&buf, binary.LittleEndian, m.Indices); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestBounds(t *testing.T) {
	m, err := Generate(bottle, 8, 4)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if m.Bounds.Min.Y != 0 || m.Bounds.Max.Y != 18 {
		t.Errorf("height bounds = [%v, %v], want [0, 18]", m.Bounds.Min.Y, m.Bounds.Max.Y)
	}
	if !near(m.Bounds.Max.X, 3) || !near(m.Bounds.Min.X, -3) {
		t.Errorf("x bounds = [%v, %v], want [-3, 3]", m.Bounds.Min.X, m.Bounds.Max.X)
	}
}

func TestGenerateInvalid(t *testing.T) {
	tests := []struct {
		name string
		spec ProfileSpec
		a, v int
	}{
		{"two angular segments", bottle, 2, 4},
		{"zero vertical segments", bottle, 8, 0},
		{"negative vertical segments", bottle, 8, -1},
		{"zero base radius", ProfileSpec{TotalHeight: 18, BaseRadius: 0, NeckRadius: 2.6, ShoulderStart: 15, ShoulderEnd: 16}, 8, 4},
		{"negative neck radius", ProfileSpec{TotalHeight: 18, BaseRadius: 3, NeckRadius: -1, ShoulderStart: 15, ShoulderEnd: 16}, 8, 4},
		{"shoulder start negative", ProfileSpec{TotalHeight: 18, BaseRadius: 3, NeckRadius: 2.6, ShoulderStart: -1, ShoulderEnd: 16}, 8, 4},
		{"shoulder end above top", ProfileSpec{TotalHeight: 18, BaseRadius: 3, NeckRadius: 2.6, ShoulderStart: 15, ShoulderEnd: 19}, 8, 4},
		{"shoulder reversed", ProfileSpec{TotalHeight: 18, BaseRadius: 3, NeckRadius: 2.6, ShoulderStart: 16, ShoulderEnd: 15}, 8, 4},
		{"nan height", ProfileSpec{TotalHeight: math32.NaN(), BaseRadius: 3, NeckRadius: 2.6}, 8, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Generate(tt.spec, tt.a, tt.v)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("err = %v, want ErrInvalidArgument", err)
			}
			if m != nil {
				t.Error("got a mesh alongside the error")
			}
		})
	}
}

func TestGenerateInvalidDoesNotAllocate(t *testing.T) {
	allocs := testing.AllocsPerRun(10, func() {
		_, _ = Generate(bottle, 2, 4)
	})
	// only the wrapped error is allocated, never the buffers
	if allocs > 4 {
		t.Errorf("invalid call made %v allocations", allocs)
	}
}
