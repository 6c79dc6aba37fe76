package mesh

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kylepfurey/FureyLib-sub005/internal/domain"
)

// faceNormal returns the unnormalized normal of triangle t.
func faceNormal(m *Mesh, t int) Vec3 {
	a := m.Vertices[m.Triangles[3*t]]
	b := m.Vertices[m.Triangles[3*t+1]]
	c := m.Vertices[m.Triangles[3*t+2]]
	return b.Sub(a).Cross(c.Sub(a))
}

func TestPlane(t *testing.T) {
	m, err := Plane(4, 2, 4, 2)
	if err != nil {
		t.Fatalf("Plane: %v", err)
	}
	if len(m.Vertices) != 15 {
		t.Fatalf("expected 15 vertices, got %d", len(m.Vertices))
	}
	if m.TriangleCount() != 16 {
		t.Fatalf("expected 16 triangles, got %d", m.TriangleCount())
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	min, max := m.Bounds()
	if !min.ApproxEqual(domain.V3(-2, 0, -1), 1e-12) || !max.ApproxEqual(domain.V3(2, 0, 1), 1e-12) {
		t.Fatalf("unexpected bounds %+v %+v", min, max)
	}

	for i := 0; i < m.TriangleCount(); i++ {
		if n := faceNormal(m, i); n.Y <= 0 {
			t.Fatalf("triangle %d faces down: %+v", i, n)
		}
	}
}

func TestGenerators_RejectBadInput(t *testing.T) {
	cases := map[string]func() (*Mesh, error){
		"plane zero width":  func() (*Mesh, error) { return Plane(0, 1, 1, 1) },
		"plane no segments": func() (*Mesh, error) { return Plane(1, 1, 0, 1) },
		"cube negative":     func() (*Mesh, error) { return Cube(-1) },
		"disc two segments": func() (*Mesh, error) { return Disc(1, 2) },
		"disc zero radius":  func() (*Mesh, error) { return Disc(0, 8) },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			m, err := fn()
			if m != nil || !domain.IsKind(err, domain.KindInvalidInput) {
				t.Fatalf("expected invalid_input, got mesh=%v err=%v", m != nil, err)
			}
		})
	}
}

func TestCube_FacesPointOutward(t *testing.T) {
	m, err := Cube(2)
	if err != nil {
		t.Fatalf("Cube: %v", err)
	}
	if len(m.Vertices) != 24 || m.TriangleCount() != 12 {
		t.Fatalf("unexpected counts %d/%d", len(m.Vertices), m.TriangleCount())
	}
	for i := 0; i < m.TriangleCount(); i++ {
		a := m.Vertices[m.Triangles[3*i]]
		b := m.Vertices[m.Triangles[3*i+1]]
		c := m.Vertices[m.Triangles[3*i+2]]
		centroid := a.Add(b).Add(c).Scale(1.0 / 3)
		if faceNormal(m, i).Dot(centroid) <= 0 {
			t.Fatalf("triangle %d points inward", i)
		}
	}

	min, max := m.Bounds()
	if !min.ApproxEqual(domain.V3(-1, -1, -1), 1e-12) || !max.ApproxEqual(domain.V3(1, 1, 1), 1e-12) {
		t.Fatalf("unexpected bounds %+v %+v", min, max)
	}
}

func TestDisc(t *testing.T) {
	m, err := Disc(1, 8)
	if err != nil {
		t.Fatalf("Disc: %v", err)
	}
	if len(m.Vertices) != 9 || m.TriangleCount() != 8 {
		t.Fatalf("unexpected counts %d/%d", len(m.Vertices), m.TriangleCount())
	}
	for i := 0; i < m.TriangleCount(); i++ {
		if n := faceNormal(m, i); n.Y <= 0 {
			t.Fatalf("triangle %d faces down", i)
		}
	}
}

func TestDisplaceRecomputesNormals(t *testing.T) {
	m, _ := Plane(2, 2, 2, 2)
	m.Displace(func(x, _ float64) float64 { return x })

	min, max := m.Bounds()
	if min.Y != -1 || max.Y != 1 {
		t.Fatalf("expected y in [-1,1], got %v..%v", min.Y, max.Y)
	}
	want := domain.V3(-1, 1, 0).Normalize()
	for i, n := range m.Normals {
		if !n.ApproxEqual(want, 1e-9) {
			t.Fatalf("normal %d = %+v, want %+v", i, n, want)
		}
	}
}

func TestValidate(t *testing.T) {
	bad := &Mesh{Vertices: []Vec3{{}, {}}, Triangles: []int{0, 1, 2}}
	if err := bad.Validate(); !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected out-of-range error, got %v", err)
	}
	bad = &Mesh{Vertices: []Vec3{{}}, Triangles: []int{0, 0}}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected multiple-of-3 error")
	}
}

func TestWriteOBJ(t *testing.T) {
	m := &Mesh{
		Vertices:  []Vec3{{}, {X: 1}, {Z: 1}},
		Triangles: []int{0, 2, 1},
	}

	var buf bytes.Buffer
	if err := m.WriteOBJ(&buf, "tri"); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}
	want := "o tri\nv 0 0 0\nv 1 0 0\nv 0 0 1\nf 1 3 2\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}

	m.RecalculateNormals()
	buf.Reset()
	_ = m.WriteOBJ(&buf, "")
	if !strings.Contains(buf.String(), "f 1//1 3//3 2//2") {
		t.Fatalf("expected normal indices, got %q", buf.String())
	}
}
