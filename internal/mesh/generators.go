package mesh

import (
	"fmt"
	"math"

	"github.com/kylepfurey/FureyLib-sub005/internal/domain"
)

// Plane builds a grid in the XZ plane centred on the origin, facing +Y.
// It has (xSegs+1)*(zSegs+1) vertices and 2*xSegs*zSegs triangles.
func Plane(width, depth float64, xSegs, zSegs int) (*Mesh, error) {
	if width <= 0 || depth <= 0 {
		return nil, domain.InvalidInput("mesh.plane", fmt.Sprintf("size %gx%g must be positive", width, depth), nil)
	}
	if xSegs < 1 || zSegs < 1 {
		return nil, domain.InvalidInput("mesh.plane", fmt.Sprintf("segments %dx%d must be >= 1", xSegs, zSegs), nil)
	}

	cols := xSegs + 1
	m := &Mesh{}
	for z := 0; z <= zSegs; z++ {
		for x := 0; x <= xSegs; x++ {
			u := float64(x) / float64(xSegs)
			v := float64(z) / float64(zSegs)
			m.Vertices = append(m.Vertices, Vec3{X: (u - 0.5) * width, Z: (v - 0.5) * depth})
			m.Normals = append(m.Normals, Vec3{Y: 1})
			m.UVs = append(m.UVs, Vec2{X: u, Y: v})
		}
	}

	for z := 0; z < zSegs; z++ {
		for x := 0; x < xSegs; x++ {
			i := z*cols + x
			// Viewed from +Y: i -> i+cols -> i+1 is counter-clockwise.
			m.Triangles = append(m.Triangles,
				i, i+cols, i+1,
				i+1, i+cols, i+cols+1,
			)
		}
	}
	return m, nil
}

// Cube builds an axis-aligned cube centred on the origin. Each face has its
// own four vertices so normals stay flat.
func Cube(size float64) (*Mesh, error) {
	if size <= 0 {
		return nil, domain.InvalidInput("mesh.cube", fmt.Sprintf("size %g must be positive", size), nil)
	}
	h := size / 2

	faces := []struct {
		n, u, v Vec3
	}{
		{Vec3{X: 1}, Vec3{Z: -1}, Vec3{Y: 1}},
		{Vec3{X: -1}, Vec3{Z: 1}, Vec3{Y: 1}},
		{Vec3{Y: 1}, Vec3{X: 1}, Vec3{Z: -1}},
		{Vec3{Y: -1}, Vec3{X: 1}, Vec3{Z: 1}},
		{Vec3{Z: 1}, Vec3{X: 1}, Vec3{Y: 1}},
		{Vec3{Z: -1}, Vec3{X: -1}, Vec3{Y: 1}},
	}

	m := &Mesh{}
	for _, f := range faces {
		base := len(m.Vertices)
		center := f.n.Scale(h)
		corners := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
		for _, c := range corners {
			p := center.Add(f.u.Scale(c[0] * h)).Add(f.v.Scale(c[1] * h))
			m.Vertices = append(m.Vertices, p)
			m.Normals = append(m.Normals, f.n)
			m.UVs = append(m.UVs, Vec2{X: (c[0] + 1) / 2, Y: (c[1] + 1) / 2})
		}
		m.Triangles = append(m.Triangles, base, base+1, base+2, base, base+2, base+3)
	}
	return m, nil
}

// Disc builds a flat fan in the XZ plane facing +Y, with a centre vertex.
func Disc(radius float64, segments int) (*Mesh, error) {
	if radius <= 0 {
		return nil, domain.InvalidInput("mesh.disc", fmt.Sprintf("radius %g must be positive", radius), nil)
	}
	if segments < 3 {
		return nil, domain.InvalidInput("mesh.disc", fmt.Sprintf("segments %d must be >= 3", segments), nil)
	}

	m := &Mesh{
		Vertices: []Vec3{{}},
		Normals:  []Vec3{{Y: 1}},
		UVs:      []Vec2{{X: 0.5, Y: 0.5}},
	}
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		x, z := math.Cos(a), math.Sin(a)
		m.Vertices = append(m.Vertices, Vec3{X: x * radius, Z: z * radius})
		m.Normals = append(m.Normals, Vec3{Y: 1})
		m.UVs = append(m.UVs, Vec2{X: 0.5 + x/2, Y: 0.5 + z/2})
	}
	for i := 0; i < segments; i++ {
		cur := 1 + i
		next := 1 + (i+1)%segments
		// Angle grows from +X toward +Z, which is clockwise seen from +Y.
		m.Triangles = append(m.Triangles, 0, next, cur)
	}
	return m, nil
}
